package types

// Quality labels for a composite fit score
const (
	LabelExcellent = "excellent"
	LabelGood      = "good"
	LabelPartial   = "partial"
	LabelLow       = "low"
)

// FitScoreBreakdown holds the four component scores and their capped sum.
// Component maxima sum to exactly 100, so Total only diverges from the raw
// sum if a future calibration pushes components past their bands.
type FitScoreBreakdown struct {
	SkillMatchScore    float64 `json:"skill_match_score"`   // 0-60
	ExperienceScore    float64 `json:"experience_score"`    // 0-20
	SeniorityScore     float64 `json:"seniority_score"`     // 0-10
	SemanticSimilarity float64 `json:"semantic_similarity"` // 0-10
	Total              float64 `json:"total"`               // min(100, sum)
}

// MatchRationale is the human-readable explanation attached to a fit score.
// Partial is set by batch ranking when the semantic term was unavailable and
// the score was computed from rule components only.
type MatchRationale struct {
	Summary            string   `json:"summary"`
	MatchingSkills     []string `json:"matching_skills"`
	SkillGaps          []string `json:"skill_gaps"`
	TransferableSkills []string `json:"transferable_skills"`
	Recommendations    []string `json:"recommendations"`
	Partial            bool     `json:"partial,omitempty"`
}

// FitIndex is the full scoring result for one candidate/job pair.
type FitIndex struct {
	Total        float64            `json:"total"`
	Label        string             `json:"label"`
	Breakdown    FitScoreBreakdown  `json:"breakdown"`
	Rationale    MatchRationale     `json:"rationale"`
	SkillMatches []SkillMatchDetail `json:"skill_matches"`
}
