package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hirelytics/backend/internal/models"
)

type CandidateRepository interface {
	Create(candidate *models.Candidate) error
	FindByID(id uuid.UUID) (*models.Candidate, error)
	UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error
	SaveResult(id uuid.UUID, result *models.AnalysisResult) error
	FindPending(limit int) ([]models.Candidate, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

// Create implements CandidateRepository.
func (r *candidateRepository) Create(candidate *models.Candidate) error {
	if err := r.db.Create(candidate).Error; err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

// FindByID implements CandidateRepository.
func (r *candidateRepository) FindByID(id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.Where("id = ?", id).First(&candidate).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("candidate not found")
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}

// UpdateStatus implements CandidateRepository.
func (r *candidateRepository) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	result := r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate not found")
	}
	return nil
}

// SaveResult implements CandidateRepository. Saving a result always completes
// the candidate: the analyzer never returns a failed analysis.
func (r *candidateRepository) SaveResult(id uuid.UUID, result *models.AnalysisResult) error {
	res := r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(&models.Candidate{
			Status:         models.StatusCompleted,
			AnalysisResult: result,
		})

	if res.Error != nil {
		return fmt.Errorf("failed to save result: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("candidate not found")
	}
	return nil
}

// FindPending implements CandidateRepository.
func (r *candidateRepository) FindPending(limit int) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.
		Where("status = ?", models.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find pending candidates: %w", err)
	}
	return candidates, nil
}
