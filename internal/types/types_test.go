package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillQueryText_JoinsNamesInOrder(t *testing.T) {
	skills := []SkillVector{{Skill: "Python"}, {Skill: "FastAPI"}, {Skill: "SQL"}}
	assert.Equal(t, "Python, FastAPI, SQL", SkillQueryText(skills))
}

func TestSkillQueryText_SingleSkill(t *testing.T) {
	assert.Equal(t, "Go", SkillQueryText([]SkillVector{{Skill: "Go"}}))
}

func TestSkillQueryText_Empty(t *testing.T) {
	assert.Equal(t, "", SkillQueryText(nil))
}

func TestSkillQueryText_MatchesSkillNames(t *testing.T) {
	// The query text is the profile's skill names joined; the two views of
	// the skill set must never drift.
	profile := CandidateProfile{Skills: []SkillVector{{Skill: "Go"}, {Skill: "SQL"}}}
	assert.Equal(t, "Go, SQL", SkillQueryText(profile.Skills))
	assert.Equal(t, []string{"Go", "SQL"}, profile.SkillNames())
}
