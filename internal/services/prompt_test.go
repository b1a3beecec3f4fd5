package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAnalysisPromptEmbedsInputsVerbatim(t *testing.T) {
	pb := NewPromptBuilder()

	jobDescription := "Senior Go developer, gRPC and PostgreSQL required."
	cvText := "10 years building distributed systems in Go."
	candidateName := "Jane Doe"

	prompt := pb.BuildAnalysisPrompt(jobDescription, cvText, candidateName)

	assert.Contains(t, prompt, jobDescription)
	assert.Contains(t, prompt, cvText)
	assert.Contains(t, prompt, candidateName)
}

func TestBuildAnalysisPromptContainsOutputSchema(t *testing.T) {
	prompt := NewPromptBuilder().BuildAnalysisPrompt("job", "cv", "Alice")

	for _, key := range []string{"skill_match", "experience_match", "keyword_match", "total_score", "summary", "strengths", "missing_skills"} {
		assert.Contains(t, prompt, key)
	}
	assert.Contains(t, strings.ToLower(prompt), "no markdown")
}

func TestBuildAnalysisPromptToleratesEmptyInputs(t *testing.T) {
	prompt := NewPromptBuilder().BuildAnalysisPrompt("", "", "")

	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "JOB DESCRIPTION:")
	assert.Contains(t, prompt, "total_score")
}
