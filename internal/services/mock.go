package services

import (
	"fmt"

	"hirelytics/backend/internal/models"
)

// Fixed fallback scores. The mock path must be fully deterministic so it can
// be asserted in tests without any external dependency.
const (
	MockSkillMatch      = 75
	MockExperienceMatch = 80
	MockKeywordMatch    = 70
	MockTotalScore      = 76
)

const DefaultMockReason = "backend unavailable"

// MockAnalyzer produces the deterministic fallback result used whenever the
// AI path is unavailable or exhausted.
type MockAnalyzer struct{}

func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{}
}

func (m *MockAnalyzer) Produce(candidateName, reason string) models.AnalysisResult {
	if reason == "" {
		reason = DefaultMockReason
	}

	return models.AnalysisResult{
		CandidateName: candidateName,
		Scores: models.ScoreSet{
			SkillMatch:      MockSkillMatch,
			ExperienceMatch: MockExperienceMatch,
			KeywordMatch:    MockKeywordMatch,
			TotalScore:      MockTotalScore,
		},
		Analysis: models.AnalysisDetail{
			Summary:       fmt.Sprintf("Mock analysis (%s)", reason),
			Strengths:     []string{"Python", "FastAPI"},
			MissingSkills: []string{"Kubernetes", "CI/CD"},
		},
		IsMock:      true,
		ErrorReason: reason,
	}
}
