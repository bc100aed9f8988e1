// Package vectorindex stores job and candidate-skill embeddings and serves
// metadata-filtered k-nearest-neighbor queries over them.
package vectorindex

import (
	"context"
	"fmt"
)

// Logical namespaces. Jobs holds one primary vector per job plus one
// auxiliary vector per job skill; Users holds one vector per candidate skill.
const (
	NamespaceJobs  = "jobs"
	NamespaceUsers = "users"
)

// Metadata keys written by the engine and usable in filters.
const (
	MetaJobID           = "job_id"
	MetaTitle           = "title"
	MetaSkill           = "skill"
	MetaIsSkillVector   = "is_skill_vector"
	MetaUserID          = "user_id"
	MetaResumeID        = "resume_id"
	MetaLocationType    = "location_type"
	MetaSalaryMin       = "salary_min"
	MetaSalaryMax       = "salary_max"
	MetaExperienceLevel = "experience_level"
	MetaExperienceMin   = "experience_min_years"
	MetaVisaSponsorship = "visa_sponsorship"
)

// SkillUpsert is one skill vector to store alongside its owner.
type SkillUpsert struct {
	Skill  string
	Vector []float32
}

// JobUpsert is a full write of one job: the primary vector plus one flagged
// vector per required/preferred skill. The skill vectors let candidate-to-
// skill search operate independently of whole-job semantics.
type JobUpsert struct {
	JobID    string
	Title    string
	Vector   []float32
	Skills   []SkillUpsert
	Metadata map[string]any
}

// Match is one ranked search hit.
type Match struct {
	ID       string         `json:"id"`
	Score    float64        `json:"score"` // cosine similarity
	Metadata map[string]any `json:"metadata"`
}

// Index is the vector storage contract. Upserts are idempotent full
// replacements per owner id, so concurrent writes for the same id cannot
// interleave into a mixed state.
type Index interface {
	// UpsertJob replaces all vectors for job.JobID with the given set.
	UpsertJob(ctx context.Context, job JobUpsert) error
	// UpsertUserSkills replaces all vectors for (userID, resumeID).
	UpsertUserSkills(ctx context.Context, userID, resumeID string, skills []SkillUpsert) error
	// Search returns up to topK matches in namespace ranked by cosine
	// similarity, restricted to rows satisfying every filter. Searches in
	// NamespaceJobs exclude rows flagged is_skill_vector unless a filter
	// addresses that field explicitly.
	Search(ctx context.Context, namespace string, queryVector []float32, topK int, filters []Filter) ([]Match, error)
	// DeleteJob removes all vectors for a job.
	DeleteJob(ctx context.Context, jobID string) error
	// DeleteUserSkills removes all vectors for (userID, resumeID).
	DeleteUserSkills(ctx context.Context, userID, resumeID string) error
	// Close releases held resources.
	Close() error
}

// IndexError wraps any storage failure with the operation that hit it.
type IndexError struct {
	Op    string
	Cause error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("vector index %s failed: %v", e.Op, e.Cause)
}

func (e *IndexError) Unwrap() error {
	return e.Cause
}

// userOwner builds the owner key shared by both index implementations.
func userOwner(userID, resumeID string) string {
	return userID + "/" + resumeID
}
