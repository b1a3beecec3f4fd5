package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	StatusPending    AnalysisStatus = "pending"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
)

type Candidate struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID      uuid.UUID      `gorm:"type:uuid;not null" json:"job_id"`
	Name       string         `gorm:"type:text" json:"name"`
	CVFilename string         `gorm:"type:text" json:"cv_filename"`
	CVText     string         `gorm:"type:text" json:"-"`
	Status     AnalysisStatus `gorm:"not null;default:'pending'" json:"status"`

	// Nullable: a candidate has no result until the worker has analyzed it.
	AnalysisResult *AnalysisResult `gorm:"type:jsonb;serializer:json" json:"analysis_result,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Job Job `gorm:"foreignKey:JobID" json:"-"`
}

func (Candidate) TableName() string {
	return "candidates"
}
