package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/match-engine/internal/observability"
	"github.com/jonathan/match-engine/internal/types"
	"github.com/jonathan/match-engine/internal/vectorindex"
)

var scoreCommand = &cobra.Command{
	Use:   "score",
	Short: "Compute the fit index for one candidate/job pair",
	Long:  "Scores a candidate against a single job. The semantic term is computed directly from the two embeddings, so the job does not need to be indexed first.",
	RunE:  runScoreCmd,
}

var (
	scoreConfigPath    string
	scoreCandidatePath string
	scoreJobPath       string
	scoreVerbose       bool
)

func init() {
	scoreCommand.Flags().StringVar(&scoreConfigPath, "config", "", "Path to config.json file")
	scoreCommand.Flags().StringVar(&scoreCandidatePath, "candidate", "", "Path to a candidate profile JSON file")
	scoreCommand.Flags().StringVar(&scoreJobPath, "job", "", "Path to a single-job JSON file")
	scoreCommand.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print a detailed breakdown")
	_ = scoreCommand.MarkFlagRequired("candidate")
	_ = scoreCommand.MarkFlagRequired("job")

	rootCmd.AddCommand(scoreCommand)
}

func runScoreCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(scoreConfigPath)
	if err != nil {
		return err
	}

	engine, cleanup, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	candidate, err := loadCandidate(scoreCandidatePath)
	if err != nil {
		return err
	}
	jobs, err := loadJobs(scoreJobPath)
	if err != nil {
		return err
	}
	if len(jobs) != 1 {
		return fmt.Errorf("score expects exactly one job, got %d", len(jobs))
	}
	doc := jobs[0]

	candidateVector, err := engine.GenerateEmbedding(ctx, types.SkillQueryText(candidate.Skills), true)
	if err != nil {
		return err
	}
	jobVector, err := engine.GenerateEmbedding(ctx, doc.Title+"\n"+doc.Description, true)
	if err != nil {
		return err
	}
	semantic := vectorindex.CosineSimilarity(candidateVector, jobVector)

	fit, err := engine.CalculateFitIndex(candidate, doc.NormalizedJob, &semantic)
	if err != nil {
		return err
	}

	if scoreVerbose || cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintFitIndex(&fit)
		return nil
	}

	encoded, err := json.MarshalIndent(fit, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
