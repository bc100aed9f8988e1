// Package matching is the engine's external surface. It wires the embedding
// service, vector index, and scorers together behind the three entry points
// collaborators call: embedding generation, job/skill indexing, and fit
// scoring with semantic retrieval.
package matching

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/match-engine/internal/embedding"
	"github.com/jonathan/match-engine/internal/scoring"
	"github.com/jonathan/match-engine/internal/types"
	"github.com/jonathan/match-engine/internal/validation"
	"github.com/jonathan/match-engine/internal/vectorindex"
)

// Engine orchestrates semantic retrieval and fit scoring. It is safe for
// concurrent use; the embedding cache is the only shared mutable state and
// handles its own locking.
type Engine struct {
	embeddings *embedding.Service
	index      vectorindex.Index
	scorer     *scoring.Engine
}

// New creates an engine from an embedding service and a vector index.
func New(embeddings *embedding.Service, index vectorindex.Index) *Engine {
	return &Engine{
		embeddings: embeddings,
		index:      index,
		scorer:     scoring.NewEngine(),
	}
}

// GenerateEmbedding returns the vector for text, consulting the cache
// unless useCache is false.
func (e *Engine) GenerateEmbedding(ctx context.Context, text string, useCache bool) ([]float32, error) {
	return e.embeddings.GenerateEmbedding(ctx, text, useCache)
}

// BatchGenerateEmbeddings embeds texts in provider-sized chunks, preserving
// input order.
func (e *Engine) BatchGenerateEmbeddings(ctx context.Context, texts []string, batchSize int) ([][]float32, error) {
	return e.embeddings.BatchGenerateEmbeddings(ctx, texts, batchSize)
}

// IndexJob embeds the job and its skills, then upserts them. Calling it
// again for the same job id fully replaces the previous vectors.
func (e *Engine) IndexJob(ctx context.Context, job types.NormalizedJob, description string) error {
	if err := validation.ValidateJob(&job); err != nil {
		return err
	}

	skills := dedupeSkills(job.RequiredSkills, job.PreferredSkills)
	texts := make([]string, 0, 1+len(skills))
	texts = append(texts, job.Title+"\n"+description)
	texts = append(texts, skills...)

	vectors, err := e.embeddings.BatchGenerateEmbeddings(ctx, texts, 0)
	if err != nil {
		return fmt.Errorf("failed to embed job %s: %w", job.ID, err)
	}

	upsert := vectorindex.JobUpsert{
		JobID:    job.ID,
		Title:    job.Title,
		Vector:   vectors[0],
		Metadata: jobMetadata(job),
	}
	for i, skill := range skills {
		upsert.Skills = append(upsert.Skills, vectorindex.SkillUpsert{
			Skill:  skill,
			Vector: vectors[i+1],
		})
	}

	return e.index.UpsertJob(ctx, upsert)
}

// IndexUserSkills embeds the candidate's skills and upserts them under
// (userID, resumeID). Skills that already carry a vector are not re-embedded.
func (e *Engine) IndexUserSkills(ctx context.Context, userID, resumeID string, skills []types.SkillVector) error {
	if userID == "" || resumeID == "" {
		return validation.NewFieldError("user_id/resume_id", "must not be empty")
	}

	var missing []string
	var missingIdx []int
	for i, s := range skills {
		if s.Vector == nil {
			missing = append(missing, s.Skill)
			missingIdx = append(missingIdx, i)
		}
	}
	if len(missing) > 0 {
		vectors, err := e.embeddings.BatchGenerateEmbeddings(ctx, missing, 0)
		if err != nil {
			return fmt.Errorf("failed to embed skills for user %s: %w", userID, err)
		}
		for j, i := range missingIdx {
			skills[i].Vector = vectors[j]
		}
	}

	upserts := make([]vectorindex.SkillUpsert, 0, len(skills))
	for _, s := range skills {
		upserts = append(upserts, vectorindex.SkillUpsert{Skill: s.Skill, Vector: s.Vector})
	}
	return e.index.UpsertUserSkills(ctx, userID, resumeID, upserts)
}

// SearchSimilarJobs embeds the candidate's combined skill set and returns
// the top jobs by cosine similarity, restricted by filters.
func (e *Engine) SearchSimilarJobs(ctx context.Context, candidateSkills []types.SkillVector, topK int, filters []vectorindex.Filter) ([]vectorindex.Match, error) {
	if len(candidateSkills) == 0 {
		return nil, validation.NewFieldError("candidate_skills", "must not be empty")
	}

	queryVector, err := e.embeddings.GenerateEmbedding(ctx, types.SkillQueryText(candidateSkills), true)
	if err != nil {
		return nil, fmt.Errorf("failed to embed candidate skills: %w", err)
	}

	return e.index.Search(ctx, vectorindex.NamespaceJobs, queryVector, topK, filters)
}

// CalculateFitIndex validates both records and computes the composite score.
// semanticScore is required; pass the cosine similarity from
// SearchSimilarJobs, or degrade explicitly via RankJobs.
func (e *Engine) CalculateFitIndex(candidate types.CandidateProfile, job types.NormalizedJob, semanticScore *float64) (types.FitIndex, error) {
	if err := validation.ValidateCandidate(&candidate); err != nil {
		return types.FitIndex{}, err
	}
	if err := validation.ValidateJob(&job); err != nil {
		return types.FitIndex{}, err
	}
	return e.scorer.CalculateFitIndex(candidate, job, semanticScore)
}

// dedupeSkills concatenates the required and preferred lists, dropping
// case-insensitive repeats so a skill listed in both produces one vector row.
func dedupeSkills(required, preferred []string) []string {
	seen := make(map[string]bool, len(required)+len(preferred))
	skills := make([]string, 0, len(required)+len(preferred))
	for _, skill := range append(append([]string{}, required...), preferred...) {
		key := strings.ToLower(strings.TrimSpace(skill))
		if seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, skill)
	}
	return skills
}

// jobMetadata flattens the filterable job fields into index metadata.
func jobMetadata(job types.NormalizedJob) map[string]any {
	meta := map[string]any{
		vectorindex.MetaVisaSponsorship: job.VisaSponsorship,
	}
	if job.LocationType != "" {
		meta[vectorindex.MetaLocationType] = job.LocationType
	}
	if job.ExperienceLevel != "" {
		meta[vectorindex.MetaExperienceLevel] = job.ExperienceLevel
	}
	if job.ExperienceMinYears != nil {
		meta[vectorindex.MetaExperienceMin] = *job.ExperienceMinYears
	}
	if job.SalaryMin != nil {
		meta[vectorindex.MetaSalaryMin] = *job.SalaryMin
	}
	if job.SalaryMax != nil {
		meta[vectorindex.MetaSalaryMax] = *job.SalaryMax
	}
	return meta
}
