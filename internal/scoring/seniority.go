package scoring

import "github.com/jonathan/match-engine/internal/types"

// MaxSeniorityScore is the seniority component ceiling.
const MaxSeniorityScore = 10.0

// levelRank orders seniority levels for distance scoring.
var levelRank = map[string]int{
	types.LevelEntry:     0,
	types.LevelMid:       1,
	types.LevelSenior:    2,
	types.LevelStaff:     3,
	types.LevelPrincipal: 4,
}

// LevelForYears maps years of experience to a discrete seniority level.
// Thresholds: 0-2 entry, 3-5 mid, 6-10 senior, 11-15 staff, 16+ principal.
func LevelForYears(years float64) string {
	switch {
	case years < 3:
		return types.LevelEntry
	case years < 6:
		return types.LevelMid
	case years < 11:
		return types.LevelSenior
	case years < 16:
		return types.LevelStaff
	default:
		return types.LevelPrincipal
	}
}

// ScoreSeniority scores the distance between the candidate's derived level
// and the job's stated level: 10 exact, 7 one level off, 3 two levels off,
// 0 beyond. A job with no stated level grants full credit. A stated years
// range is the job's own definition of its level, so candidates inside it
// match exactly regardless of the generic thresholds.
func ScoreSeniority(candidateYears float64, jobLevel string, jobMinYears, jobMaxYears *float64) float64 {
	jobRank, ok := levelRank[jobLevel]
	if !ok {
		return MaxSeniorityScore
	}

	if jobMinYears != nil && jobMaxYears != nil &&
		candidateYears >= *jobMinYears && candidateYears <= *jobMaxYears {
		return MaxSeniorityScore
	}

	candidateRank := levelRank[LevelForYears(candidateYears)]
	distance := candidateRank - jobRank
	if distance < 0 {
		distance = -distance
	}

	switch distance {
	case 0:
		return 10
	case 1:
		return 7
	case 2:
		return 3
	default:
		return 0
	}
}
