// Package scoring implements the deterministic Fit Index: rule-based skill,
// experience, and seniority components merged with a rescaled semantic
// similarity into a 0-100 composite with matching rationale.
package scoring

import (
	"strings"

	"github.com/jonathan/match-engine/internal/types"
)

// Skill match point allocation. Required coverage dominates; preferred
// coverage tops it up.
const (
	MaxSkillScore      = 60.0
	maxRequiredPoints  = 50.0
	maxPreferredPoints = 10.0
)

// MatchSkills compares the candidate's skills against a job's required and
// preferred lists. Matching is case-insensitive exact string match; near-miss
// terminology is the semantic component's job, not this one's.
//
// A job with no required skills grants the full required points, and
// likewise for preferred: absence of a requirement never penalizes.
func MatchSkills(candidateSkills, required, preferred []string) (float64, []types.SkillMatchDetail) {
	candidate := make(map[string]bool, len(candidateSkills))
	for _, s := range candidateSkills {
		candidate[normalizeSkill(s)] = true
	}

	details := make([]types.SkillMatchDetail, 0, len(required)+len(preferred))
	seen := make(map[string]bool, len(required)+len(preferred))

	matchedRequired := 0
	for _, skill := range required {
		key := normalizeSkill(skill)
		has := candidate[key]
		if has {
			matchedRequired++
		}
		if !seen[key] {
			seen[key] = true
			details = append(details, types.SkillMatchDetail{Skill: skill, UserHas: has, IsRequired: true})
		}
	}

	matchedPreferred := 0
	for _, skill := range preferred {
		key := normalizeSkill(skill)
		has := candidate[key]
		if has {
			matchedPreferred++
		}
		if !seen[key] {
			seen[key] = true
			details = append(details, types.SkillMatchDetail{Skill: skill, UserHas: has, IsRequired: false})
		}
	}

	requiredScore := maxRequiredPoints
	if len(required) > 0 {
		requiredScore = maxRequiredPoints * float64(matchedRequired) / float64(len(required))
	}
	preferredScore := maxPreferredPoints
	if len(preferred) > 0 {
		preferredScore = maxPreferredPoints * float64(matchedPreferred) / float64(len(preferred))
	}

	return requiredScore + preferredScore, details
}

func normalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}
