package scoring

import (
	"github.com/jonathan/match-engine/internal/types"
	"github.com/jonathan/match-engine/internal/validation"
)

// MaxTotalScore caps the composite. Component maxima already sum to exactly
// 100; the cap guards future calibration drift, not normal operation.
const MaxTotalScore = 100.0

// Quality label thresholds. Bins are half-open and evaluated high to low,
// so a score exactly on a boundary takes the higher label.
const (
	excellentThreshold = 90.0
	goodThreshold      = 70.0
	partialThreshold   = 40.0
)

// Engine computes fit indexes. It holds no state and performs no I/O, so a
// single instance is safe for concurrent use across candidate/job pairs.
type Engine struct{}

// NewEngine returns a fit index engine.
func NewEngine() *Engine {
	return &Engine{}
}

// CalculateFitIndex merges the rule components with the semantic similarity
// into a 0-100 composite plus rationale. semanticScore is the raw cosine
// similarity from vector search; a nil value is a caller contract violation,
// not a zero. Callers that lost the semantic signal must decide their own
// fallback (see matching.RankJobs).
func (e *Engine) CalculateFitIndex(candidate types.CandidateProfile, job types.NormalizedJob, semanticScore *float64) (types.FitIndex, error) {
	if semanticScore == nil {
		return types.FitIndex{}, validation.NewFieldError("semantic_score", "is required; compute it or degrade explicitly")
	}

	skillScore, details := MatchSkills(candidate.SkillNames(), job.RequiredSkills, job.PreferredSkills)
	experienceScore, band := ScoreExperience(candidate.TotalExperienceYears, job.ExperienceMinYears)
	seniorityScore := ScoreSeniority(candidate.TotalExperienceYears, job.ExperienceLevel, job.ExperienceMinYears, job.ExperienceMaxYears)
	semantic := RescaleSemantic(*semanticScore)

	breakdown := types.FitScoreBreakdown{
		SkillMatchScore:    skillScore,
		ExperienceScore:    experienceScore,
		SeniorityScore:     seniorityScore,
		SemanticSimilarity: semantic,
	}
	breakdown.Total = min(MaxTotalScore, skillScore+experienceScore+seniorityScore+semantic)

	label := QualityLabel(breakdown.Total)

	return types.FitIndex{
		Total:        breakdown.Total,
		Label:        label,
		Breakdown:    breakdown,
		Rationale:    buildRationale(details, breakdown, label, band),
		SkillMatches: details,
	}, nil
}

// QualityLabel maps a composite score to its quality bin.
func QualityLabel(total float64) string {
	switch {
	case total >= excellentThreshold:
		return types.LabelExcellent
	case total >= goodThreshold:
		return types.LabelGood
	case total >= partialThreshold:
		return types.LabelPartial
	default:
		return types.LabelLow
	}
}
