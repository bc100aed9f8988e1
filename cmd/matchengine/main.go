// Package main provides the match-engine CLI: indexing jobs and candidate
// skills, semantic search, and fit scoring over JSON inputs.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "matchengine",
	Short: "Fit scoring and semantic job retrieval",
	Long:  "matchengine ranks candidates against job postings by combining rule-based skill, experience, and seniority scoring with embedding-based semantic similarity.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
