package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	response string
	err      error
	calls    int
}

func (s *stubBackend) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

// failingSleep marks the test as failed if the analyzer ever tries to back
// off; used on paths that must return without sleeping.
func failingSleep(t *testing.T) SleepFunc {
	return func(ctx context.Context, d time.Duration) error {
		t.Fatalf("unexpected sleep of %s", d)
		return nil
	}
}

const validResponse = `{
	"candidate_name": "Alice",
	"scores": {"skill_match": 85, "experience_match": 75, "keyword_match": 90, "total_score": 83},
	"analysis": {"summary": "Strong match", "strengths": ["Go"], "missing_skills": ["Terraform"]}
}`

func TestAnalyzeWithoutBackendReturnsMockImmediately(t *testing.T) {
	policy := NewRetryPolicyWithSleep(3, 30*time.Second, failingSleep(t))
	analyzer := NewAnalyzerService(nil, policy)

	result := analyzer.Analyze(context.Background(), "job", "cv", "Alice")

	assert.True(t, result.IsMock)
	assert.Equal(t, "Alice", result.CandidateName)
	assert.Equal(t, DefaultMockReason, result.ErrorReason)
}

func TestAnalyzeStripsMarkdownFences(t *testing.T) {
	bare := &stubBackend{response: `{"candidate_name":"Bob","scores":{"total_score":50}}`}
	fenced := &stubBackend{response: "```json\n{\"candidate_name\":\"Bob\",\"scores\":{\"total_score\":50}}\n```"}

	policy := NewRetryPolicyWithSleep(3, 30*time.Second, failingSleep(t))
	fromBare := NewAnalyzerService(bare, policy).Analyze(context.Background(), "job", "cv", "Bob")
	fromFenced := NewAnalyzerService(fenced, policy).Analyze(context.Background(), "job", "cv", "Bob")

	assert.Equal(t, fromBare, fromFenced)
	assert.False(t, fromFenced.IsMock)
	assert.Equal(t, 50, fromFenced.Scores.TotalScore)
}

func TestAnalyzeSuccessIsNormalized(t *testing.T) {
	backend := &stubBackend{response: validResponse}
	policy := NewRetryPolicyWithSleep(3, 30*time.Second, failingSleep(t))
	analyzer := NewAnalyzerService(backend, policy)

	result := analyzer.Analyze(context.Background(), "job", "cv", "Alice")

	require.False(t, result.IsMock)
	assert.Equal(t, "Alice", result.CandidateName)
	assert.Equal(t, 85, result.Scores.SkillMatch)
	assert.Equal(t, 83, result.Scores.TotalScore)
	assert.Equal(t, "Strong match", result.Analysis.Summary)
	assert.Equal(t, []string{"Go"}, result.Analysis.Strengths)
	assert.Equal(t, []string{"Terraform"}, result.Analysis.MissingSkills)
	assert.Equal(t, 1, backend.calls)
}

func TestAnalyzeMalformedResponseFallsBackToMock(t *testing.T) {
	backend := &stubBackend{response: "I am unable to score this candidate."}
	policy := NewRetryPolicyWithSleep(3, 30*time.Second, failingSleep(t))
	analyzer := NewAnalyzerService(backend, policy)

	result := analyzer.Analyze(context.Background(), "job", "cv", "Alice")

	assert.True(t, result.IsMock)
	assert.Equal(t, "Alice", result.CandidateName)
	assert.Contains(t, result.ErrorReason, string(KindMalformedResponse))
}

func TestAnalyzeQuotaExhaustedFallsBackToMock(t *testing.T) {
	backend := &stubBackend{err: errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED")}
	recorder := &sleepRecorder{}
	policy := NewRetryPolicyWithSleep(3, 30*time.Second, recorder.sleep)
	analyzer := NewAnalyzerService(backend, policy)

	result := analyzer.Analyze(context.Background(), "job", "cv", "Alice")

	assert.True(t, result.IsMock)
	assert.Equal(t, "quota exhausted", result.ErrorReason)
	assert.Equal(t, 3, backend.calls)
	assert.Equal(t, []time.Duration{30 * time.Second, 60 * time.Second}, recorder.sleeps)
}

func TestAnalyzeUpstreamFailureCapturesMessage(t *testing.T) {
	backend := &stubBackend{err: errors.New("connection reset by peer")}
	policy := NewRetryPolicyWithSleep(3, 30*time.Second, failingSleep(t))
	analyzer := NewAnalyzerService(backend, policy)

	result := analyzer.Analyze(context.Background(), "job", "cv", "Alice")

	assert.True(t, result.IsMock)
	assert.Contains(t, result.ErrorReason, "connection reset by peer")
	assert.Equal(t, 1, backend.calls)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `{"candidate_name":"Bob"}`,
			want:  `{"candidate_name":"Bob"}`,
		},
		{
			name:  "fenced object",
			input: "```json\n{\"candidate_name\":\"Bob\"}\n```",
			want:  `{"candidate_name":"Bob"}`,
		},
		{
			name:  "fence without language tag",
			input: "```\n{\"candidate_name\":\"Bob\"}\n```",
			want:  `{"candidate_name":"Bob"}`,
		},
		{
			name:  "object surrounded by prose",
			input: "Here is the result:\n{\"candidate_name\":\"Bob\"}\nHope this helps!",
			want:  `{"candidate_name":"Bob"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.input))
		})
	}
}
