package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirelytics/backend/internal/models"
)

func TestCompleteFillsAllFields(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want models.AnalysisResult
	}{
		{
			name: "empty object",
			raw:  map[string]any{},
			want: models.AnalysisResult{
				CandidateName: "Alice",
				Scores:        models.ScoreSet{},
				Analysis: models.AnalysisDetail{
					Summary:       defaultSummary,
					Strengths:     []string{},
					MissingSkills: []string{},
				},
			},
		},
		{
			name: "partial scores",
			raw: map[string]any{
				"scores": map[string]any{
					"skill_match": float64(88),
					"total_score": float64(90),
				},
			},
			want: models.AnalysisResult{
				CandidateName: "Alice",
				Scores:        models.ScoreSet{SkillMatch: 88, TotalScore: 90},
				Analysis: models.AnalysisDetail{
					Summary:       defaultSummary,
					Strengths:     []string{},
					MissingSkills: []string{},
				},
			},
		},
		{
			name: "out of range scores are clamped",
			raw: map[string]any{
				"scores": map[string]any{
					"skill_match":      float64(150),
					"experience_match": float64(-20),
					"keyword_match":    float64(100),
					"total_score":      float64(0),
				},
			},
			want: models.AnalysisResult{
				CandidateName: "Alice",
				Scores:        models.ScoreSet{SkillMatch: 100, ExperienceMatch: 0, KeywordMatch: 100, TotalScore: 0},
				Analysis: models.AnalysisDetail{
					Summary:       defaultSummary,
					Strengths:     []string{},
					MissingSkills: []string{},
				},
			},
		},
		{
			name: "scores not an object",
			raw: map[string]any{
				"scores": "very good",
			},
			want: models.AnalysisResult{
				CandidateName: "Alice",
				Scores:        models.ScoreSet{},
				Analysis: models.AnalysisDetail{
					Summary:       defaultSummary,
					Strengths:     []string{},
					MissingSkills: []string{},
				},
			},
		},
		{
			name: "full payload with extras",
			raw: map[string]any{
				"candidate_name": "Bob",
				"scores": map[string]any{
					"skill_match":      float64(70),
					"experience_match": float64(65),
					"keyword_match":    float64(80),
					"total_score":      float64(72),
					"bonus_score":      float64(999),
				},
				"analysis": map[string]any{
					"summary":        "Solid backend profile",
					"strengths":      []any{"Go", "PostgreSQL"},
					"missing_skills": []any{"Kubernetes"},
					"confidence":     "high",
				},
				"model_version": "v2",
			},
			want: models.AnalysisResult{
				CandidateName: "Bob",
				Scores:        models.ScoreSet{SkillMatch: 70, ExperienceMatch: 65, KeywordMatch: 80, TotalScore: 72},
				Analysis: models.AnalysisDetail{
					Summary:       "Solid backend profile",
					Strengths:     []string{"Go", "PostgreSQL"},
					MissingSkills: []string{"Kubernetes"},
				},
			},
		},
		{
			name: "non-string list entries are skipped",
			raw: map[string]any{
				"analysis": map[string]any{
					"strengths": []any{"Go", float64(42), "SQL"},
				},
			},
			want: models.AnalysisResult{
				CandidateName: "Alice",
				Scores:        models.ScoreSet{},
				Analysis: models.AnalysisDetail{
					Summary:       defaultSummary,
					Strengths:     []string{"Go", "SQL"},
					MissingSkills: []string{},
				},
			},
		},
	}

	normalizer := NewResponseNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizer.Complete(tt.raw, "Alice")
			assert.Equal(t, tt.want, got)
			// Slices must never be nil after normalization.
			assert.NotNil(t, got.Analysis.Strengths)
			assert.NotNil(t, got.Analysis.MissingSkills)
		})
	}
}

func TestCompleteScoresAlwaysInRange(t *testing.T) {
	normalizer := NewResponseNormalizer()

	for _, value := range []any{float64(-1), float64(0), float64(50), float64(100), float64(101), "eighty", nil, true} {
		got := normalizer.Complete(map[string]any{
			"scores": map[string]any{
				"skill_match":      value,
				"experience_match": value,
				"keyword_match":    value,
				"total_score":      value,
			},
		}, "Alice")

		for _, score := range []int{got.Scores.SkillMatch, got.Scores.ExperienceMatch, got.Scores.KeywordMatch, got.Scores.TotalScore} {
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestProjectNilResult(t *testing.T) {
	normalizer := NewResponseNormalizer()
	assert.Nil(t, normalizer.Project(nil))
}

func TestProjectFieldNames(t *testing.T) {
	normalizer := NewResponseNormalizer()

	projection := normalizer.Project(&models.AnalysisResult{
		CandidateName: "Bob",
		Scores:        models.ScoreSet{SkillMatch: 70, ExperienceMatch: 65, KeywordMatch: 80, TotalScore: 72},
		Analysis: models.AnalysisDetail{
			Summary:       "ok",
			Strengths:     []string{"Go"},
			MissingSkills: []string{"K8s"},
		},
		IsMock:      true,
		ErrorReason: "quota exhausted",
	})
	require.NotNil(t, projection)

	data, err := json.Marshal(projection)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))

	for _, key := range []string{"candidateName", "totalScore", "skillMatch", "experienceMatch", "keywordMatch", "summary", "strengths", "missingSkills"} {
		assert.Contains(t, fields, key)
	}
	// The projection drops the mock framing.
	assert.NotContains(t, fields, "is_mock")
	assert.NotContains(t, fields, "error_reason")

	assert.Equal(t, float64(72), fields["totalScore"])
	assert.Equal(t, float64(70), fields["skillMatch"])
	assert.Equal(t, float64(65), fields["experienceMatch"])
	assert.Equal(t, float64(80), fields["keywordMatch"])
}

func TestProjectAllSkipsCandidatesWithoutResult(t *testing.T) {
	normalizer := NewResponseNormalizer()

	candidates := []models.Candidate{
		{
			Name: "Analyzed",
			AnalysisResult: &models.AnalysisResult{
				CandidateName: "Analyzed",
				Scores:        models.ScoreSet{TotalScore: 80},
				Analysis:      models.AnalysisDetail{Summary: "ok", Strengths: []string{}, MissingSkills: []string{}},
			},
		},
		{
			Name:           "Not yet analyzed",
			AnalysisResult: nil,
		},
	}

	projections := normalizer.ProjectAll(candidates)
	require.Len(t, projections, 1)
	assert.Equal(t, "Analyzed", projections[0].CandidateName)
	assert.Equal(t, 80, projections[0].TotalScore)
}
