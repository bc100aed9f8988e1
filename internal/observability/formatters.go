// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/match-engine/internal/types"
	"github.com/jonathan/match-engine/internal/vectorindex"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintFitIndex outputs a human-readable summary of a fit score.
func (p *Printer) PrintFitIndex(fit *types.FitIndex) {
	if fit == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total:      %.1f (%s)\n", fit.Total, fit.Label))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Skills:     %.1f / 60\n", fit.Breakdown.SkillMatchScore))
	sb.WriteString(fmt.Sprintf("Experience: %.1f / 20\n", fit.Breakdown.ExperienceScore))
	sb.WriteString(fmt.Sprintf("Seniority:  %.1f / 10\n", fit.Breakdown.SeniorityScore))
	sb.WriteString(fmt.Sprintf("Semantic:   %.1f / 10\n", fit.Breakdown.SemanticSimilarity))

	if len(fit.Rationale.SkillGaps) > 0 {
		sb.WriteString("\nSkill Gaps:\n")
		appendList(&sb, fit.Rationale.SkillGaps)
	}
	if len(fit.Rationale.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		appendList(&sb, fit.Rationale.Recommendations)
	}
	if fit.Rationale.Partial {
		sb.WriteString("\n(partial: semantic signal unavailable)\n")
	}

	p.printBox("Fit Index", sb.String())
}

// PrintMatches outputs ranked search results.
func (p *Printer) PrintMatches(matches []vectorindex.Match) {
	var sb strings.Builder
	if len(matches) == 0 {
		sb.WriteString("No matches found.\n")
	}
	for i, m := range matches {
		title, _ := m.Metadata[vectorindex.MetaTitle].(string)
		sb.WriteString(fmt.Sprintf("%2d. %-30s %.3f (%s)\n", i+1, title, m.Score, m.ID))
	}
	p.printBox("Similar Jobs", sb.String())
}

func appendList(sb *strings.Builder, items []string) {
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
