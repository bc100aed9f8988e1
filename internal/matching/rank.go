package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/match-engine/internal/embedding"
	"github.com/jonathan/match-engine/internal/types"
	"github.com/jonathan/match-engine/internal/validation"
	"github.com/jonathan/match-engine/internal/vectorindex"
)

// DefaultRankConcurrency bounds the scoring fan-out. Scoring is CPU-light,
// so the bound mostly caps goroutine count for very large batches.
const DefaultRankConcurrency = 8

// RankOptions tunes a RankJobs call.
type RankOptions struct {
	// Concurrency bounds parallel pair scoring; <=0 uses the default.
	Concurrency int
	// Filters restrict the semantic search used to collect similarity
	// scores. They do not exclude jobs from rule-based scoring.
	Filters []vectorindex.Filter
}

// RankedJob pairs a job with its fit index.
type RankedJob struct {
	Job types.NormalizedJob `json:"job"`
	Fit types.FitIndex      `json:"fit"`
}

// RankJobs scores every job against one candidate and returns them sorted
// by total descending (job id ascending on ties). Semantic similarity comes
// from one search over the index; jobs whose semantic signal is unavailable
// (or the whole batch, when the provider is down) degrade to rule-only
// scoring with a zero semantic term and Rationale.Partial set, rather than
// failing the batch.
func (e *Engine) RankJobs(ctx context.Context, candidate types.CandidateProfile, jobs []types.NormalizedJob, opts RankOptions) ([]RankedJob, error) {
	if err := validation.ValidateCandidate(&candidate); err != nil {
		return nil, err
	}

	semanticByJob, semanticErr := e.collectSemanticScores(ctx, candidate, jobs, opts.Filters)
	if semanticErr != nil {
		// Transient provider or index failure: keep ranking on rule
		// components alone. Anything else (a programming error) surfaces.
		var provErr *embedding.ProviderError
		var idxErr *vectorindex.IndexError
		if !errors.As(semanticErr, &provErr) && !errors.As(semanticErr, &idxErr) {
			return nil, semanticErr
		}
		semanticByJob = nil
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultRankConcurrency
	}

	ranked := make([]RankedJob, len(jobs))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			semantic, ok := semanticByJob[job.ID]
			if !ok {
				semantic = 0
			}

			fit, err := e.scorer.CalculateFitIndex(candidate, job, &semantic)
			if err != nil {
				return fmt.Errorf("failed to score job %s: %w", job.ID, err)
			}
			if !ok {
				fit.Rationale.Partial = true
			}
			ranked[i] = RankedJob{Job: job, Fit: fit}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Fit.Total != ranked[j].Fit.Total {
			return ranked[i].Fit.Total > ranked[j].Fit.Total
		}
		return ranked[i].Job.ID < ranked[j].Job.ID
	})
	return ranked, nil
}

// collectSemanticScores embeds the candidate once and reads similarity for
// every requested job from a single search. The search is pinned to the
// batch's job ids so jobs indexed outside the batch can never push a
// requested job off the result list.
func (e *Engine) collectSemanticScores(ctx context.Context, candidate types.CandidateProfile, jobs []types.NormalizedJob, filters []vectorindex.Filter) (map[string]float64, error) {
	if len(candidate.Skills) == 0 {
		return nil, nil
	}

	queryVector, err := e.embeddings.GenerateEmbedding(ctx, types.SkillQueryText(candidate.Skills), true)
	if err != nil {
		return nil, fmt.Errorf("failed to embed candidate skills: %w", err)
	}

	ids := make([]any, len(jobs))
	for i, job := range jobs {
		ids[i] = job.ID
	}
	batchFilters := append(append([]vectorindex.Filter{}, filters...), vectorindex.In(vectorindex.MetaJobID, ids...))

	matches, err := e.index.Search(ctx, vectorindex.NamespaceJobs, queryVector, len(jobs), batchFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}

	scores := make(map[string]float64, len(matches))
	for _, m := range matches {
		scores[m.ID] = m.Score
	}
	return scores, nil
}
