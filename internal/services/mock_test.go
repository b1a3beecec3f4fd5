package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockAnalyzerIsDeterministic(t *testing.T) {
	mock := NewMockAnalyzer()

	first := mock.Produce("Alice", "x")
	second := mock.Produce("Alice", "x")

	assert.Equal(t, first, second)
	assert.True(t, first.IsMock)
	assert.Equal(t, "Alice", first.CandidateName)
	assert.Equal(t, "x", first.ErrorReason)
	assert.Equal(t, "Mock analysis (x)", first.Analysis.Summary)
}

func TestMockAnalyzerScores(t *testing.T) {
	result := NewMockAnalyzer().Produce("Bob", "quota exhausted")

	assert.Equal(t, MockSkillMatch, result.Scores.SkillMatch)
	assert.Equal(t, MockExperienceMatch, result.Scores.ExperienceMatch)
	assert.Equal(t, MockKeywordMatch, result.Scores.KeywordMatch)
	assert.Equal(t, MockTotalScore, result.Scores.TotalScore)
	assert.NotEmpty(t, result.Analysis.Strengths)
	assert.NotEmpty(t, result.Analysis.MissingSkills)
}

func TestMockAnalyzerDefaultReason(t *testing.T) {
	result := NewMockAnalyzer().Produce("Bob", "")

	assert.Equal(t, DefaultMockReason, result.ErrorReason)
	assert.Equal(t, "Mock analysis (backend unavailable)", result.Analysis.Summary)
}
