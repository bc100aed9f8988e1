package scoring

// MaxExperienceScore is the experience component ceiling.
const MaxExperienceScore = 20.0

// Experience bands, named by how the candidate sits against the job's
// stated minimum.
const (
	BandPerfect        = "perfect"
	BandAppropriate    = "appropriate"
	BandStretch        = "stretch"
	BandUnderQualified = "under-qualified"
)

// ScoreExperience bands the candidate's years against the job's minimum.
// A job with no stated minimum grants full credit.
func ScoreExperience(candidateYears float64, jobMinYears *float64) (float64, string) {
	if jobMinYears == nil {
		return MaxExperienceScore, BandPerfect
	}

	gap := *jobMinYears - candidateYears
	switch {
	case gap <= 0:
		return 20, BandPerfect
	case gap <= 1:
		return 15, BandAppropriate
	case gap <= 2:
		return 10, BandStretch
	default:
		return 5, BandUnderQualified
	}
}
