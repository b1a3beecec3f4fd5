package services

import (
	"hirelytics/backend/internal/models"
)

// defaultSummary is the placeholder used when the model response carried no
// usable summary text.
const defaultSummary = "Analysis data missing"

// ResponseNormalizer converts loosely-typed analysis payloads into complete,
// schema-conformant records, and projects stored records into the
// display-oriented shape used by job listings.
type ResponseNormalizer struct{}

func NewResponseNormalizer() *ResponseNormalizer {
	return &ResponseNormalizer{}
}

// Complete fills every required field of the result with defaults when the
// raw object omits it: scores 0 (clamped to 0-100), summary placeholder,
// empty slices. Unknown extra fields are ignored. This function has no error
// path; it is the last line of defense before the result reaches the caller.
func (n *ResponseNormalizer) Complete(raw map[string]any, candidateName string) models.AnalysisResult {
	result := models.AnalysisResult{
		CandidateName: stringField(raw, "candidate_name", candidateName),
		Analysis: models.AnalysisDetail{
			Summary:       defaultSummary,
			Strengths:     []string{},
			MissingSkills: []string{},
		},
	}

	if scores, ok := raw["scores"].(map[string]any); ok {
		result.Scores = models.ScoreSet{
			SkillMatch:      scoreField(scores, "skill_match"),
			ExperienceMatch: scoreField(scores, "experience_match"),
			KeywordMatch:    scoreField(scores, "keyword_match"),
			TotalScore:      scoreField(scores, "total_score"),
		}
	}

	if analysis, ok := raw["analysis"].(map[string]any); ok {
		result.Analysis.Summary = stringField(analysis, "summary", defaultSummary)
		result.Analysis.Strengths = stringListField(analysis, "strengths")
		result.Analysis.MissingSkills = stringListField(analysis, "missing_skills")
	}

	return result
}

// Project maps a stored result into the flattened camel-cased display shape.
// A nil stored result yields nil: candidates without an analysis contribute
// no projection entry.
func (n *ResponseNormalizer) Project(stored *models.AnalysisResult) *models.DisplayProjection {
	if stored == nil {
		return nil
	}

	return &models.DisplayProjection{
		CandidateName:   stored.CandidateName,
		TotalScore:      stored.Scores.TotalScore,
		SkillMatch:      stored.Scores.SkillMatch,
		ExperienceMatch: stored.Scores.ExperienceMatch,
		KeywordMatch:    stored.Scores.KeywordMatch,
		Summary:         stored.Analysis.Summary,
		Strengths:       copyStrings(stored.Analysis.Strengths),
		MissingSkills:   copyStrings(stored.Analysis.MissingSkills),
	}
}

// ProjectAll builds the listing view for a set of candidates, skipping those
// without a stored result.
func (n *ResponseNormalizer) ProjectAll(candidates []models.Candidate) []models.DisplayProjection {
	projections := make([]models.DisplayProjection, 0, len(candidates))
	for _, candidate := range candidates {
		if projection := n.Project(candidate.AnalysisResult); projection != nil {
			projections = append(projections, *projection)
		}
	}
	return projections
}

func stringField(m map[string]any, key, fallback string) string {
	if value, ok := m[key].(string); ok && value != "" {
		return value
	}
	return fallback
}

// scoreField reads a numeric field, tolerating the types encoding/json may
// produce, and clamps it into [0,100]. Missing or non-numeric values become 0.
func scoreField(m map[string]any, key string) int {
	var score int
	switch value := m[key].(type) {
	case float64:
		score = int(value)
	case int:
		score = value
	default:
		return 0
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func stringListField(m map[string]any, key string) []string {
	items, ok := m[key].([]any)
	if !ok {
		return []string{}
	}

	list := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			list = append(list, s)
		}
	}
	return list
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
