package scoring

import (
	"fmt"

	"github.com/jonathan/match-engine/internal/types"
)

// buildRationale derives the human-readable explanation from the skill match
// details and component scores. It is a pure function: the same details and
// breakdown always produce the same rationale.
func buildRationale(details []types.SkillMatchDetail, breakdown types.FitScoreBreakdown, label, experienceBand string) types.MatchRationale {
	var matching, gaps, transferable []string
	for _, d := range details {
		switch {
		case d.UserHas && d.IsRequired:
			matching = append(matching, d.Skill)
		case d.UserHas: // preferred-but-not-required skills the candidate brings
			matching = append(matching, d.Skill)
			transferable = append(transferable, d.Skill)
		case d.IsRequired:
			gaps = append(gaps, d.Skill)
		}
	}

	rationale := types.MatchRationale{
		Summary:            buildSummary(len(matching), len(details), label),
		MatchingSkills:     matching,
		SkillGaps:          gaps,
		TransferableSkills: transferable,
	}

	// Every score below excellent comes with at least one actionable step.
	if label != types.LabelExcellent {
		rationale.Recommendations = buildRecommendations(details, breakdown, experienceBand)
	}
	return rationale
}

func buildSummary(matched, total int, label string) string {
	switch label {
	case types.LabelExcellent:
		return fmt.Sprintf("Excellent match: %d of %d job skills covered with experience and seniority aligned.", matched, total)
	case types.LabelGood:
		return fmt.Sprintf("Good match: %d of %d job skills covered.", matched, total)
	case types.LabelPartial:
		return fmt.Sprintf("Partial match: %d of %d job skills covered; notable gaps remain.", matched, total)
	default:
		return fmt.Sprintf("Low match: %d of %d job skills covered.", matched, total)
	}
}

// buildRecommendations orders advice by leverage: missing required skills
// first, then the experience gap, then missing preferred skills.
func buildRecommendations(details []types.SkillMatchDetail, breakdown types.FitScoreBreakdown, experienceBand string) []string {
	var recs []string

	for _, d := range details {
		if d.IsRequired && !d.UserHas {
			recs = append(recs, fmt.Sprintf("Consider learning %s, which is required for this role.", d.Skill))
		}
	}

	if experienceBand != BandPerfect {
		recs = append(recs, "Build additional years of relevant experience to meet the role's minimum.")
	}

	for _, d := range details {
		if !d.IsRequired && !d.UserHas {
			recs = append(recs, fmt.Sprintf("%s is preferred for this role and would strengthen your profile.", d.Skill))
		}
	}

	if len(recs) == 0 {
		// Below excellent with no skill or experience gap: the semantic or
		// seniority component is what is lagging.
		if breakdown.SeniorityScore < MaxSeniorityScore {
			recs = append(recs, "Your seniority level differs from the role's target; highlight scope and leadership that match it.")
		} else {
			recs = append(recs, "Tailor your profile wording toward this role's domain to strengthen semantic alignment.")
		}
	}
	return recs
}
