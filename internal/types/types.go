// Package types defines the domain records shared across the fit scoring
// and semantic retrieval engine.
package types

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// EmbeddingDimension is the expected length of every skill and job vector.
// 1536 matches the configured output size of the embedding provider.
const EmbeddingDimension = 1536

// Proficiency constants for a candidate's self-reported skill level
const (
	ProficiencyExpert       = "expert"
	ProficiencyAdvanced     = "advanced"
	ProficiencyIntermediate = "intermediate"
	ProficiencyBeginner     = "beginner"
)

// ExperienceLevel constants for a job's stated seniority requirement
const (
	LevelEntry     = "entry"
	LevelMid       = "mid"
	LevelSenior    = "senior"
	LevelStaff     = "staff"
	LevelPrincipal = "principal"
)

// SkillVector is a single candidate skill, optionally carrying its embedding.
// Once the Vector field is populated the record is treated as immutable;
// the embedding pipeline fills it lazily when absent.
type SkillVector struct {
	Skill           string    `json:"skill" validate:"required"`
	YearsExperience *float64  `json:"years_experience,omitempty" validate:"omitempty,gte=0"`
	Proficiency     string    `json:"proficiency,omitempty" validate:"omitempty,oneof=expert advanced intermediate beginner"`
	Vector          []float32 `json:"-"` // Don't serialize (large)
}

// NormalizedJob is a job posting after upstream ingestion has normalized it.
// The engine only reads these; it never creates or mutates them.
type NormalizedJob struct {
	ID                        string   `json:"id" validate:"required"`
	Title                     string   `json:"title" validate:"required"`
	RequiredSkills            []string `json:"required_skills"`
	PreferredSkills           []string `json:"preferred_skills"`
	ExperienceMinYears        *float64 `json:"experience_min_years,omitempty" validate:"omitempty,gte=0"`
	ExperienceMaxYears        *float64 `json:"experience_max_years,omitempty" validate:"omitempty,gte=0"`
	ExperienceLevel           string   `json:"experience_level,omitempty" validate:"omitempty,oneof=entry mid senior staff principal"`
	ExperienceRequirementText string   `json:"experience_requirement_text,omitempty"`
	LocationType              string   `json:"location_type,omitempty"`
	SalaryMin                 *int     `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	SalaryMax                 *int     `json:"salary_max,omitempty" validate:"omitempty,gte=0"`
	VisaSponsorship           bool     `json:"visa_sponsorship"`
}

// WorkInterval is one work-history entry. A nil End means the candidate
// still holds the position and "now" is used as the boundary.
type WorkInterval struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// CandidateProfile is the engine's view of a resume: the skill set plus
// total experience summed from non-overlapping work-history intervals.
// Computed once per resume version by profile.Build.
type CandidateProfile struct {
	Skills               []SkillVector `json:"skills" validate:"dive"`
	TotalExperienceYears float64       `json:"total_experience_years" validate:"gte=0"`
}

// SkillNames returns the candidate's skill names in declaration order.
func (p *CandidateProfile) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.Skill)
	}
	return names
}

// SkillQueryText joins skill names into the text embedded for the candidate
// side of a similarity query. Every caller building that query must go
// through this so cached embeddings stay keyed on one canonical form.
func SkillQueryText(skills []SkillVector) string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Skill)
	}
	return strings.Join(names, ", ")
}

// SkillMatchDetail records whether the candidate has one job skill.
// One entry exists per job skill (required first, then preferred).
type SkillMatchDetail struct {
	Skill      string `json:"skill"`
	UserHas    bool   `json:"user_has"`
	IsRequired bool   `json:"is_required"`
}

// HashContent returns the sha256 hex digest of text. It keys the embedding
// cache and lets callers detect when a stored vector is stale.
func HashContent(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}
