package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/match-engine/internal/matching"
	"github.com/jonathan/match-engine/internal/observability"
	"github.com/jonathan/match-engine/internal/types"
)

var rankCommand = &cobra.Command{
	Use:   "rank",
	Short: "Rank many jobs against one candidate",
	Long:  "Indexes the given jobs, then scores each against the candidate and prints them best-fit first. Jobs whose semantic signal is unavailable are scored on rule components alone and flagged partial.",
	RunE:  runRankCmd,
}

var (
	rankConfigPath    string
	rankCandidatePath string
	rankJobsPath      string
	rankTop           int
	rankVerbose       bool
)

func init() {
	rankCommand.Flags().StringVar(&rankConfigPath, "config", "", "Path to config.json file")
	rankCommand.Flags().StringVar(&rankCandidatePath, "candidate", "", "Path to a candidate profile JSON file")
	rankCommand.Flags().StringVar(&rankJobsPath, "jobs", "", "Path to a JSON file with an array of jobs")
	rankCommand.Flags().IntVar(&rankTop, "top", 0, "Print only the N best matches (0 = all)")
	rankCommand.Flags().BoolVarP(&rankVerbose, "verbose", "v", false, "Print detailed breakdowns")
	_ = rankCommand.MarkFlagRequired("candidate")
	_ = rankCommand.MarkFlagRequired("jobs")

	rootCmd.AddCommand(rankCommand)
}

func runRankCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(rankConfigPath)
	if err != nil {
		return err
	}

	engine, cleanup, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	candidate, err := loadCandidate(rankCandidatePath)
	if err != nil {
		return err
	}
	docs, err := loadJobs(rankJobsPath)
	if err != nil {
		return err
	}

	jobs := make([]types.NormalizedJob, 0, len(docs))
	for _, doc := range docs {
		if err := engine.IndexJob(ctx, doc.NormalizedJob, doc.Description); err != nil {
			return fmt.Errorf("failed to index job %s: %w", doc.ID, err)
		}
		jobs = append(jobs, doc.NormalizedJob)
	}

	ranked, err := engine.RankJobs(ctx, candidate, jobs, matching.RankOptions{})
	if err != nil {
		return err
	}
	if rankTop > 0 && len(ranked) > rankTop {
		ranked = ranked[:rankTop]
	}

	if rankVerbose || cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		for _, r := range ranked {
			fmt.Printf("\n%s - %s\n", r.Job.ID, r.Job.Title)
			printer.PrintFitIndex(&r.Fit)
		}
		return nil
	}

	for _, r := range ranked {
		marker := ""
		if r.Fit.Rationale.Partial {
			marker = " (partial)"
		}
		fmt.Printf("%6.1f  %-10s %s - %s%s\n", r.Fit.Total, r.Fit.Label, r.Job.ID, r.Job.Title, marker)
	}
	return nil
}
