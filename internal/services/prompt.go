package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisPrompt creates the scoring prompt for a candidate CV. All
// inputs are embedded verbatim; empty strings render fine. The JSON schema in
// the instruction is the exact shape the normalizer expects back.
func (pb *PromptBuilder) BuildAnalysisPrompt(jobDescription, cvText, candidateName string) string {
	return fmt.Sprintf(`You are an expert HR recruiter. Analyze the following job description and candidate CV, then score the candidate.

JOB DESCRIPTION:
%s

CANDIDATE CV (%s):
%s

OUTPUT FORMAT (return ONLY the JSON object below, no markdown fences, no explanation):
{
    "candidate_name": "%s",
    "scores": {
        "skill_match": <0-100 integer>,
        "experience_match": <0-100 integer>,
        "keyword_match": <0-100 integer>,
        "total_score": <0-100 integer>
    },
    "analysis": {
        "summary": "<short summary>",
        "strengths": ["<strength 1>", "<strength 2>"],
        "missing_skills": ["<missing skill 1>", "<missing skill 2>"]
    }
}`,
		jobDescription, candidateName, cvText, candidateName)
}
