package models

// ScoreSet holds the 0-100 integer scores produced by the analysis. The JSON
// keys match the schema the model is instructed to emit, which is also the
// shape persisted on the candidate record.
type ScoreSet struct {
	SkillMatch      int `json:"skill_match"`
	ExperienceMatch int `json:"experience_match"`
	KeywordMatch    int `json:"keyword_match"`
	TotalScore      int `json:"total_score"`
}

type AnalysisDetail struct {
	Summary       string   `json:"summary"`
	Strengths     []string `json:"strengths"`
	MissingSkills []string `json:"missing_skills"`
}

// AnalysisResult is the canonical analysis output. After normalization every
// field is present: scores defaulted to 0, slices never nil. IsMock marks
// results produced by the deterministic fallback instead of the AI backend.
type AnalysisResult struct {
	CandidateName string         `json:"candidate_name"`
	Scores        ScoreSet       `json:"scores"`
	Analysis      AnalysisDetail `json:"analysis"`
	IsMock        bool           `json:"is_mock"`
	ErrorReason   string         `json:"error_reason,omitempty"`
}

// DisplayProjection is the flattened, camel-cased read model derived from a
// stored AnalysisResult for job listings. Computed on every read, never
// persisted.
type DisplayProjection struct {
	CandidateName   string   `json:"candidateName"`
	TotalScore      int      `json:"totalScore"`
	SkillMatch      int      `json:"skillMatch"`
	ExperienceMatch int      `json:"experienceMatch"`
	KeywordMatch    int      `json:"keywordMatch"`
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths"`
	MissingSkills   []string `json:"missingSkills"`
}
