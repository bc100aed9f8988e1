package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/match-engine/internal/config"
	"github.com/jonathan/match-engine/internal/embedding"
	"github.com/jonathan/match-engine/internal/matching"
	"github.com/jonathan/match-engine/internal/schemas"
	"github.com/jonathan/match-engine/internal/types"
	"github.com/jonathan/match-engine/internal/vectorindex"
)

// jobDocument is the on-disk job format: a NormalizedJob plus the free-text
// description used for the primary job embedding.
type jobDocument struct {
	types.NormalizedJob
	Description string `json:"description,omitempty"`
}

// candidateDocument is the on-disk candidate format. Work history, when
// present, recomputes total experience; otherwise the stored total is used.
type candidateDocument struct {
	Skills               []types.SkillVector  `json:"skills"`
	TotalExperienceYears float64              `json:"total_experience_years,omitempty"`
	WorkHistory          []types.WorkInterval `json:"work_history,omitempty"`
}

// loadConfig merges the optional config file with environment variables.
func loadConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildEngine wires the embedding service and vector index from config.
// The returned cleanup closes both.
func buildEngine(ctx context.Context, cfg *config.Config) (*matching.Engine, func(), error) {
	embCfg := embedding.DefaultConfig()
	if cfg.EmbeddingModel != "" {
		embCfg.Model = cfg.EmbeddingModel
	}

	client, err := embedding.NewGeminiClient(ctx, embCfg, cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create embedding client: %w", err)
	}

	ttl := embedding.DefaultCacheTTL
	if cfg.CacheTTLHours > 0 {
		ttl = time.Duration(cfg.CacheTTLHours) * time.Hour
	}
	service := embedding.NewService(client, embedding.NewCache(ttl))

	var index vectorindex.Index
	if cfg.DatabaseURL != "" {
		pgIndex, err := vectorindex.NewPostgresIndex(ctx, cfg.DatabaseURL)
		if err != nil {
			service.Close()
			return nil, nil, err
		}
		if err := pgIndex.Migrate(ctx); err != nil {
			pgIndex.Close()
			service.Close()
			return nil, nil, err
		}
		index = pgIndex
	} else {
		index = vectorindex.NewMemoryIndex()
	}

	cleanup := func() {
		index.Close()
		service.Close()
	}
	return matching.New(service, index), cleanup, nil
}

// loadJobs reads and schema-validates a JSON file holding one job or an
// array of jobs.
func loadJobs(path string) ([]jobDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs file %s: %w", path, err)
	}

	var docs []jobDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		var single jobDocument
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("failed to parse jobs file %s: %w", path, err)
		}
		docs = []jobDocument{single}
	}

	for _, doc := range docs {
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to re-encode job %s: %w", doc.ID, err)
		}
		if err := schemas.ValidateDocument(schemas.NormalizedJobSchema, raw); err != nil {
			return nil, fmt.Errorf("job %s: %w", doc.ID, err)
		}
	}
	return docs, nil
}

// loadCandidate reads and schema-validates a candidate JSON file, deriving
// total experience from work history when provided.
func loadCandidate(path string) (types.CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.CandidateProfile{}, fmt.Errorf("failed to read candidate file %s: %w", path, err)
	}
	if err := schemas.ValidateDocument(schemas.CandidateProfileSchema, data); err != nil {
		return types.CandidateProfile{}, err
	}

	var doc candidateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.CandidateProfile{}, fmt.Errorf("failed to parse candidate file %s: %w", path, err)
	}

	if len(doc.WorkHistory) > 0 {
		return buildProfile(doc)
	}
	return types.CandidateProfile{
		Skills:               doc.Skills,
		TotalExperienceYears: doc.TotalExperienceYears,
	}, nil
}
