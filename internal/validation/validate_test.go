package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/match-engine/internal/types"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

func validJob() types.NormalizedJob {
	return types.NormalizedJob{
		ID:              "job-1",
		Title:           "Backend Engineer",
		RequiredSkills:  []string{"Go"},
		ExperienceLevel: types.LevelSenior,
	}
}

func TestValidateJob_AcceptsValidJob(t *testing.T) {
	job := validJob()
	assert.NoError(t, ValidateJob(&job))
}

func TestValidateJob_AcceptsSparseMetadata(t *testing.T) {
	job := types.NormalizedJob{ID: "job-1", Title: "Backend Engineer"}
	assert.NoError(t, ValidateJob(&job))
}

func TestValidateJob_NilJob(t *testing.T) {
	err := ValidateJob(nil)
	require.Error(t, err)

	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestValidateJob_MissingID(t *testing.T) {
	job := validJob()
	job.ID = ""

	err := ValidateJob(&job)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Errors[0].Field, "ID")
}

func TestValidateJob_UnknownExperienceLevel(t *testing.T) {
	job := validJob()
	job.ExperienceLevel = "ninja"

	assert.Error(t, ValidateJob(&job))
}

func TestValidateJob_NegativeExperienceYears(t *testing.T) {
	job := validJob()
	job.ExperienceMinYears = floatPtr(-1)

	assert.Error(t, ValidateJob(&job))
}

func TestValidateJob_InvertedExperienceRange(t *testing.T) {
	job := validJob()
	job.ExperienceMinYears = floatPtr(5)
	job.ExperienceMaxYears = floatPtr(3)

	err := ValidateJob(&job)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "experience_max_years", valErr.Errors[0].Field)
}

func TestValidateJob_InvertedSalaryRange(t *testing.T) {
	job := validJob()
	job.SalaryMin = intPtr(150000)
	job.SalaryMax = intPtr(100000)

	err := ValidateJob(&job)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "salary_max", valErr.Errors[0].Field)
}

func TestValidateJob_ReportsEveryCrossFieldFailure(t *testing.T) {
	job := validJob()
	job.ExperienceMinYears = floatPtr(5)
	job.ExperienceMaxYears = floatPtr(3)
	job.SalaryMin = intPtr(150000)
	job.SalaryMax = intPtr(100000)

	err := ValidateJob(&job)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Len(t, valErr.Errors, 2)
}

func TestValidateCandidate_AcceptsEmptySkills(t *testing.T) {
	profile := types.CandidateProfile{TotalExperienceYears: 3}
	assert.NoError(t, ValidateCandidate(&profile))
}

func TestValidateCandidate_NilProfile(t *testing.T) {
	assert.Error(t, ValidateCandidate(nil))
}

func TestValidateCandidate_NegativeExperience(t *testing.T) {
	profile := types.CandidateProfile{TotalExperienceYears: -2}
	assert.Error(t, ValidateCandidate(&profile))
}

func TestValidateCandidate_SkillMissingName(t *testing.T) {
	profile := types.CandidateProfile{
		Skills: []types.SkillVector{{Proficiency: types.ProficiencyExpert}},
	}
	assert.Error(t, ValidateCandidate(&profile))
}

func TestValidateCandidate_UnknownProficiency(t *testing.T) {
	profile := types.CandidateProfile{
		Skills: []types.SkillVector{{Skill: "Go", Proficiency: "wizard"}},
	}
	assert.Error(t, ValidateCandidate(&profile))
}

func TestValidationError_MessageListsEveryField(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "a", Message: "first"},
		{Field: "b", Message: "second"},
	}}

	msg := err.Error()
	assert.Contains(t, msg, "a: first")
	assert.Contains(t, msg, "b: second")
}
