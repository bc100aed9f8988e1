package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/match-engine/internal/observability"
	"github.com/jonathan/match-engine/internal/vectorindex"
)

var searchCommand = &cobra.Command{
	Use:   "search",
	Short: "Find indexed jobs similar to a candidate's skills",
	Long: `Embeds the candidate's skill set and runs a metadata-filtered similarity search over indexed jobs.

Filters take the form field=value, field>=n, field<=n, or field=a|b|c for set membership.`,
	RunE: runSearchCmd,
}

var (
	searchConfigPath    string
	searchCandidatePath string
	searchTopK          int
	searchFilters       []string
)

func init() {
	searchCommand.Flags().StringVar(&searchConfigPath, "config", "", "Path to config.json file")
	searchCommand.Flags().StringVar(&searchCandidatePath, "candidate", "", "Path to a candidate profile JSON file")
	searchCommand.Flags().IntVar(&searchTopK, "top-k", 0, "Number of results (defaults to config top_k or 10)")
	searchCommand.Flags().StringArrayVar(&searchFilters, "filter", nil, "Metadata filter, repeatable (e.g. visa_sponsorship=true, salary_min>=120000, experience_level=mid|senior)")
	_ = searchCommand.MarkFlagRequired("candidate")

	rootCmd.AddCommand(searchCommand)
}

func runSearchCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(searchConfigPath)
	if err != nil {
		return err
	}

	engine, cleanup, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	candidate, err := loadCandidate(searchCandidatePath)
	if err != nil {
		return err
	}

	filters, err := parseFilters(searchFilters)
	if err != nil {
		return err
	}

	topK := searchTopK
	if topK <= 0 {
		topK = cfg.TopK
	}
	if topK <= 0 {
		topK = 10
	}

	matches, err := engine.SearchSimilarJobs(ctx, candidate.Skills, topK, filters)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintMatches(matches)
	return nil
}

// parseFilters converts CLI filter expressions into typed index filters.
func parseFilters(exprs []string) ([]vectorindex.Filter, error) {
	var filters []vectorindex.Filter
	for _, expr := range exprs {
		switch {
		case strings.Contains(expr, ">="):
			field, raw, _ := strings.Cut(expr, ">=")
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid numeric filter %q: %w", expr, err)
			}
			filters = append(filters, vectorindex.Min(field, n))
		case strings.Contains(expr, "<="):
			field, raw, _ := strings.Cut(expr, "<=")
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid numeric filter %q: %w", expr, err)
			}
			filters = append(filters, vectorindex.Max(field, n))
		case strings.Contains(expr, "="):
			field, raw, _ := strings.Cut(expr, "=")
			if strings.Contains(raw, "|") {
				values := make([]any, 0)
				for _, v := range strings.Split(raw, "|") {
					values = append(values, v)
				}
				filters = append(filters, vectorindex.In(field, values...))
				continue
			}
			filters = append(filters, vectorindex.Eq(field, parseScalar(raw)))
		default:
			return nil, fmt.Errorf("invalid filter %q: expected field=value, field>=n, or field<=n", expr)
		}
	}
	return filters, nil
}

// parseScalar types a filter value: bool, number, or string.
func parseScalar(raw string) any {
	if raw == "true" || raw == "false" {
		return raw == "true"
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}
