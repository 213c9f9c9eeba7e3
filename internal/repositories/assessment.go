package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/skillbridge-assessment/internal/models"
)

type AssessmentRepository interface {
	Create(assessment *models.Assessment) error
	FindByToken(token string) (*models.Assessment, error)
	FindByApplicationID(applicationID uuid.UUID) (*models.Assessment, error)
	// MarkStarted transitions invited -> started. Returns false when the
	// assessment was not in the invited state (repeat visit, already past).
	MarkStarted(id uuid.UUID, at time.Time) (bool, error)
	// MarkSubmitted transitions to the terminal submitted state. The guarded
	// update serializes concurrent submits: only the first caller gets true.
	MarkSubmitted(id uuid.UUID, at time.Time) (bool, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

// Create implements AssessmentRepository. One assessment per application; a
// duplicate insert surfaces as models.ErrAssessmentExists.
func (r *assessmentRepository) Create(assessment *models.Assessment) error {
	if err := r.db.Create(assessment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrAssessmentExists
		}
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	return nil
}

// FindByToken implements AssessmentRepository. Tokens are only ever resolved
// by exact match against the persisted row.
func (r *assessmentRepository) FindByToken(token string) (*models.Assessment, error) {
	var assessment models.Assessment
	err := r.db.
		Preload("Application").
		Preload("Application.Student").
		Preload("Application.Job").
		Where("token = ?", token).
		First(&assessment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to find assessment by token: %w", err)
	}
	return &assessment, nil
}

// FindByApplicationID implements AssessmentRepository.
func (r *assessmentRepository) FindByApplicationID(applicationID uuid.UUID) (*models.Assessment, error) {
	var assessment models.Assessment
	err := r.db.Where("application_id = ?", applicationID).First(&assessment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("assessment not found for application %s", applicationID)
		}
		return nil, fmt.Errorf("failed to find assessment: %w", err)
	}
	return &assessment, nil
}

// MarkStarted implements AssessmentRepository.
func (r *assessmentRepository) MarkStarted(id uuid.UUID, at time.Time) (bool, error) {
	result := r.db.Model(&models.Assessment{}).
		Where("id = ? AND status = ?", id, models.StatusInvited).
		Updates(map[string]interface{}{
			"status":     models.StatusStarted,
			"started_at": at,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark assessment started: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// MarkSubmitted implements AssessmentRepository.
func (r *assessmentRepository) MarkSubmitted(id uuid.UUID, at time.Time) (bool, error) {
	result := r.db.Model(&models.Assessment{}).
		Where("id = ? AND status <> ?", id, models.StatusSubmitted).
		Updates(map[string]interface{}{
			"status":       models.StatusSubmitted,
			"submitted_at": at,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark assessment submitted: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
