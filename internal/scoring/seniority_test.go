package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/match-engine/internal/types"
)

func TestLevelForYears_Thresholds(t *testing.T) {
	assert.Equal(t, types.LevelEntry, LevelForYears(0))
	assert.Equal(t, types.LevelEntry, LevelForYears(2))
	assert.Equal(t, types.LevelMid, LevelForYears(3))
	assert.Equal(t, types.LevelMid, LevelForYears(5))
	assert.Equal(t, types.LevelSenior, LevelForYears(6))
	assert.Equal(t, types.LevelSenior, LevelForYears(10))
	assert.Equal(t, types.LevelStaff, LevelForYears(11))
	assert.Equal(t, types.LevelStaff, LevelForYears(15))
	assert.Equal(t, types.LevelPrincipal, LevelForYears(16))
	assert.Equal(t, types.LevelPrincipal, LevelForYears(30))
}

func TestScoreSeniority_NoLevelDefaultsToFullCredit(t *testing.T) {
	assert.Equal(t, 10.0, ScoreSeniority(1, "", nil, nil))
}

func TestScoreSeniority_ExactLevelMatch(t *testing.T) {
	assert.Equal(t, 10.0, ScoreSeniority(7, types.LevelSenior, nil, nil))
}

func TestScoreSeniority_WithinStatedRangeMatchesExactly(t *testing.T) {
	// 5 years is mid by the generic thresholds, but the job defines its
	// senior band as 3-7 years and the candidate sits inside it.
	assert.Equal(t, 10.0, ScoreSeniority(5, types.LevelSenior, floatPtr(3), floatPtr(7)))
}

func TestScoreSeniority_OneLevelDistance(t *testing.T) {
	assert.Equal(t, 7.0, ScoreSeniority(5, types.LevelSenior, nil, nil))
	assert.Equal(t, 7.0, ScoreSeniority(12, types.LevelSenior, nil, nil))
}

func TestScoreSeniority_TwoLevelDistance(t *testing.T) {
	assert.Equal(t, 3.0, ScoreSeniority(1, types.LevelSenior, nil, nil))
}

func TestScoreSeniority_BeyondTwoLevels(t *testing.T) {
	assert.Equal(t, 0.0, ScoreSeniority(1, types.LevelStaff, nil, nil))
	assert.Equal(t, 0.0, ScoreSeniority(20, types.LevelEntry, nil, nil))
}

func TestScoreSeniority_OutsideStatedRangeUsesLevelDistance(t *testing.T) {
	assert.Equal(t, 3.0, ScoreSeniority(1, types.LevelSenior, floatPtr(5), floatPtr(10)))
}
