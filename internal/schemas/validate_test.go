package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSchemaPath_FindsRepoSchemas(t *testing.T) {
	assert.NotEmpty(t, ResolveSchemaPath(NormalizedJobSchema))
	assert.NotEmpty(t, ResolveSchemaPath(CandidateProfileSchema))
}

func TestResolveSchemaPath_MissingFile(t *testing.T) {
	assert.Empty(t, ResolveSchemaPath("schemas/does_not_exist.schema.json"))
}

func TestValidateDocument_ValidJob(t *testing.T) {
	doc := []byte(`{
		"id": "job-1",
		"title": "Backend Engineer",
		"description": "Build and run Go services.",
		"required_skills": ["Go", "SQL"],
		"preferred_skills": ["Kubernetes"],
		"experience_min_years": 3,
		"experience_level": "senior",
		"location_type": "remote",
		"salary_min": 120000,
		"salary_max": 160000,
		"visa_sponsorship": true
	}`)

	assert.NoError(t, ValidateDocument(NormalizedJobSchema, doc))
}

func TestValidateDocument_JobMissingRequiredFields(t *testing.T) {
	err := ValidateDocument(NormalizedJobSchema, []byte(`{"title": "No ID"}`))
	require.Error(t, err)

	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.NotEmpty(t, docErr.Errors)
}

func TestValidateDocument_JobRejectsUnknownFields(t *testing.T) {
	doc := []byte(`{"id": "job-1", "title": "X", "company_logo": "img.png"}`)

	var docErr *DocumentError
	assert.ErrorAs(t, ValidateDocument(NormalizedJobSchema, doc), &docErr)
}

func TestValidateDocument_JobRejectsBadExperienceLevel(t *testing.T) {
	doc := []byte(`{"id": "job-1", "title": "X", "experience_level": "ninja"}`)

	var docErr *DocumentError
	assert.ErrorAs(t, ValidateDocument(NormalizedJobSchema, doc), &docErr)
}

func TestValidateDocument_ValidCandidate(t *testing.T) {
	doc := []byte(`{
		"skills": [
			{"skill": "Go", "years_experience": 4, "proficiency": "advanced"},
			{"skill": "SQL"}
		],
		"work_history": [
			{"start": "2020-01-01T00:00:00Z", "end": "2024-01-01T00:00:00Z"},
			{"start": "2024-01-01T00:00:00Z"}
		]
	}`)

	assert.NoError(t, ValidateDocument(CandidateProfileSchema, doc))
}

func TestValidateDocument_CandidateSkillNeedsName(t *testing.T) {
	doc := []byte(`{"skills": [{"proficiency": "expert"}]}`)

	var docErr *DocumentError
	assert.ErrorAs(t, ValidateDocument(CandidateProfileSchema, doc), &docErr)
}

func TestValidateDocument_CandidateNegativeYears(t *testing.T) {
	doc := []byte(`{"skills": [{"skill": "Go", "years_experience": -1}]}`)

	var docErr *DocumentError
	assert.ErrorAs(t, ValidateDocument(CandidateProfileSchema, doc), &docErr)
}

func TestValidateDocument_UnknownSchemaPath(t *testing.T) {
	err := ValidateDocument("schemas/missing.schema.json", []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestDocumentError_MessageListsEveryViolation(t *testing.T) {
	err := &DocumentError{Errors: []FieldError{
		{Field: "id", Message: "is required"},
		{Field: "title", Message: "is required"},
	}}

	msg := err.Error()
	assert.Contains(t, msg, "id: is required")
	assert.Contains(t, msg, "title: is required")
}
