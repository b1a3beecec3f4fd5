package models

type AnalyzeRequest struct {
	JobDescription string `json:"job_description" validate:"required"`
	CandidateName  string `json:"candidate_name" validate:"required"`
	CVContent      string `json:"cv_content" validate:"required"`

	// Optional persistence addressing. When both are set the handler stores
	// the result on the candidate record after responding.
	JobID       string `json:"job_id,omitempty"`
	CandidateID string `json:"candidate_id,omitempty"`
}

type UploadResponse struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type CreateJobRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type JobResponse struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	CandidateCount int                 `json:"candidate_count"`
	Results        []DisplayProjection `json:"results"`
}

type CandidateResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type SimilarCandidate struct {
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	Score       float32 `json:"score"`
	Excerpt     string  `json:"excerpt"`
}
