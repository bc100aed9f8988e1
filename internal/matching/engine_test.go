package matching

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/match-engine/internal/embedding"
	"github.com/jonathan/match-engine/internal/types"
	"github.com/jonathan/match-engine/internal/validation"
	"github.com/jonathan/match-engine/internal/vectorindex"
)

// stubClient embeds deterministically: texts sharing a registered keyword
// land near each other, everything else lands orthogonal.
type stubClient struct {
	mu         sync.Mutex
	embedCalls int
	err        error
}

// axes gives related texts overlapping vectors so cosine ranking in tests is
// predictable without a real provider.
var axes = []string{"python", "go", "java"}

func (s *stubClient) vectorFor(text string) []float32 {
	lower := strings.ToLower(text)
	v := make([]float32, len(axes)+1)
	hit := false
	for i, axis := range axes {
		if strings.Contains(lower, axis) {
			v[i] = 1
			hit = true
		}
	}
	if !hit {
		v[len(axes)] = 1
	}
	return v
}

func (s *stubClient) Embed(_ context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.embedCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vectorFor(text), nil
}

func (s *stubClient) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = s.vectorFor(text)
	}
	return vectors, nil
}

func (s *stubClient) Dimension() int { return len(axes) + 1 }
func (s *stubClient) Close() error   { return nil }

func newTestEngine(t *testing.T) (*Engine, *stubClient, *vectorindex.MemoryIndex) {
	t.Helper()
	client := &stubClient{}
	index := vectorindex.NewMemoryIndex()
	return New(embedding.NewService(client, nil), index), client, index
}

func pythonJob(id string) types.NormalizedJob {
	return types.NormalizedJob{
		ID:             id,
		Title:          "Python Engineer",
		RequiredSkills: []string{"Python"},
	}
}

func javaJob(id string) types.NormalizedJob {
	return types.NormalizedJob{
		ID:             id,
		Title:          "Java Engineer",
		RequiredSkills: []string{"Java"},
	}
}

func pythonCandidate() types.CandidateProfile {
	return types.CandidateProfile{
		Skills:               []types.SkillVector{{Skill: "Python"}},
		TotalExperienceYears: 5,
	}
}

func TestIndexJob_RejectsInvalidJob(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	err := engine.IndexJob(context.Background(), types.NormalizedJob{Title: "No ID"}, "description")
	require.Error(t, err)

	var valErr *validation.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestIndexJob_WritesPrimaryAndSkillVectors(t *testing.T) {
	engine, _, index := newTestEngine(t)
	ctx := context.Background()

	job := pythonJob("job-1")
	job.PreferredSkills = []string{"Django"}
	require.NoError(t, engine.IndexJob(ctx, job, "Build Python services"))

	primary, err := index.Search(ctx, vectorindex.NamespaceJobs, []float32{1, 0, 0, 0}, 10, nil)
	require.NoError(t, err)
	require.Len(t, primary, 1)
	assert.Equal(t, "job-1", primary[0].ID)

	skillRows, err := index.Search(ctx, vectorindex.NamespaceJobs, []float32{1, 0, 0, 0}, 10, []vectorindex.Filter{
		vectorindex.Eq(vectorindex.MetaIsSkillVector, true),
	})
	require.NoError(t, err)
	assert.Len(t, skillRows, 2)
}

func TestIndexJob_SkillInBothListsGetsOneVectorRow(t *testing.T) {
	engine, _, index := newTestEngine(t)
	ctx := context.Background()

	job := pythonJob("job-1")
	job.PreferredSkills = []string{"python", "Django"}
	require.NoError(t, engine.IndexJob(ctx, job, "Build Python services"))

	skillRows, err := index.Search(ctx, vectorindex.NamespaceJobs, []float32{1, 0, 0, 0}, 10, []vectorindex.Filter{
		vectorindex.Eq(vectorindex.MetaIsSkillVector, true),
	})
	require.NoError(t, err)
	require.Len(t, skillRows, 2)

	skills := []string{
		skillRows[0].Metadata[vectorindex.MetaSkill].(string),
		skillRows[1].Metadata[vectorindex.MetaSkill].(string),
	}
	assert.ElementsMatch(t, []string{"Python", "Django"}, skills)
}

func TestIndexUserSkills_EmbedsOnlyMissingVectors(t *testing.T) {
	engine, client, _ := newTestEngine(t)

	skills := []types.SkillVector{
		{Skill: "Python", Vector: []float32{1, 0, 0, 0}},
		{Skill: "Go"},
	}
	require.NoError(t, engine.IndexUserSkills(context.Background(), "user-1", "resume-1", skills))

	// Only "Go" lacked a vector; it goes through the batch path, so no
	// single-embed calls happen at all.
	assert.Equal(t, 0, client.embedCalls)
	assert.NotNil(t, skills[1].Vector)
}

func TestIndexUserSkills_RequiresIdentifiers(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	err := engine.IndexUserSkills(context.Background(), "", "resume-1", nil)
	require.Error(t, err)

	var valErr *validation.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestSearchSimilarJobs_RanksRelatedJobsFirst(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, engine.IndexJob(ctx, pythonJob("job-python"), "Python backend work"))
	require.NoError(t, engine.IndexJob(ctx, javaJob("job-java"), "Java backend work"))

	matches, err := engine.SearchSimilarJobs(ctx, pythonCandidate().Skills, 10, nil)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "job-python", matches[0].ID)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestSearchSimilarJobs_EmptySkillsFails(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	_, err := engine.SearchSimilarJobs(context.Background(), nil, 10, nil)
	require.Error(t, err)

	var valErr *validation.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestCalculateFitIndex_ValidatesJob(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	semantic := 0.5
	_, err := engine.CalculateFitIndex(pythonCandidate(), types.NormalizedJob{Title: "No ID"}, &semantic)
	require.Error(t, err)

	var valErr *validation.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestCalculateFitIndex_EndToEnd(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	semantic := 0.85
	fit, err := engine.CalculateFitIndex(pythonCandidate(), pythonJob("job-1"), &semantic)
	require.NoError(t, err)
	assert.Equal(t, types.LabelExcellent, fit.Label)
}
