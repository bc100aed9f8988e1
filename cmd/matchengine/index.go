package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/match-engine/internal/profile"
	"github.com/jonathan/match-engine/internal/types"
)

var indexCommand = &cobra.Command{
	Use:   "index",
	Short: "Embed and index jobs or candidate skills",
	Long:  "Reads normalized jobs or a candidate profile from JSON, generates embeddings, and upserts them into the vector index. Re-running with the same ids replaces previous vectors.",
	RunE:  runIndexCmd,
}

var (
	indexConfigPath    string
	indexJobsPath      string
	indexCandidatePath string
	indexUserID        string
	indexResumeID      string
)

func init() {
	indexCommand.Flags().StringVar(&indexConfigPath, "config", "", "Path to config.json file")
	indexCommand.Flags().StringVar(&indexJobsPath, "jobs", "", "Path to a JSON file with one job or an array of jobs")
	indexCommand.Flags().StringVar(&indexCandidatePath, "candidate", "", "Path to a candidate profile JSON file")
	indexCommand.Flags().StringVar(&indexUserID, "user-id", "", "User id for candidate skill indexing")
	indexCommand.Flags().StringVar(&indexResumeID, "resume-id", "", "Resume id for candidate skill indexing")

	rootCmd.AddCommand(indexCommand)
}

func runIndexCmd(_ *cobra.Command, _ []string) error {
	if indexJobsPath == "" && indexCandidatePath == "" {
		return fmt.Errorf("either --jobs or --candidate is required")
	}

	ctx := context.Background()
	cfg, err := loadConfig(indexConfigPath)
	if err != nil {
		return err
	}

	engine, cleanup, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if indexJobsPath != "" {
		jobs, err := loadJobs(indexJobsPath)
		if err != nil {
			return err
		}
		for _, doc := range jobs {
			if err := engine.IndexJob(ctx, doc.NormalizedJob, doc.Description); err != nil {
				return fmt.Errorf("failed to index job %s: %w", doc.ID, err)
			}
			fmt.Printf("indexed job %s (%s)\n", doc.ID, doc.Title)
		}
	}

	if indexCandidatePath != "" {
		if indexUserID == "" || indexResumeID == "" {
			return fmt.Errorf("--user-id and --resume-id are required with --candidate")
		}
		candidate, err := loadCandidate(indexCandidatePath)
		if err != nil {
			return err
		}
		if err := engine.IndexUserSkills(ctx, indexUserID, indexResumeID, candidate.Skills); err != nil {
			return fmt.Errorf("failed to index skills for user %s: %w", indexUserID, err)
		}
		fmt.Printf("indexed %d skills for user %s\n", len(candidate.Skills), indexUserID)
	}

	return nil
}

// buildProfile derives the candidate profile from a document carrying work
// history.
func buildProfile(doc candidateDocument) (types.CandidateProfile, error) {
	built, err := profile.Build(doc.Skills, doc.WorkHistory, time.Now())
	if err != nil {
		return types.CandidateProfile{}, fmt.Errorf("failed to build candidate profile: %w", err)
	}
	return built, nil
}
