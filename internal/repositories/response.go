package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/skillbridge-assessment/internal/models"
)

type ResponseRepository interface {
	// Upsert saves an answer keyed by (assessment_id, ref_type, ref_id).
	// A later submission for the same item overwrites the stored answer.
	Upsert(record *models.ResponseRecord) error
	CountByAssessment(assessmentID uuid.UUID) (int64, error)
	FindByAssessment(assessmentID uuid.UUID) ([]models.ResponseRecord, error)
	UpdateScore(id uuid.UUID, score float64, isCorrect *bool) error
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

// Upsert implements ResponseRepository.
func (r *responseRepository) Upsert(record *models.ResponseRecord) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "assessment_id"},
			{Name: "ref_type"},
			{Name: "ref_id"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"answer":     record.Answer,
			"updated_at": time.Now(),
		}),
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert response: %w", err)
	}
	return nil
}

// CountByAssessment implements ResponseRepository.
func (r *responseRepository) CountByAssessment(assessmentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.ResponseRecord{}).
		Where("assessment_id = ?", assessmentID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}

// FindByAssessment implements ResponseRepository.
func (r *responseRepository) FindByAssessment(assessmentID uuid.UUID) ([]models.ResponseRecord, error) {
	var records []models.ResponseRecord
	err := r.db.
		Where("assessment_id = ?", assessmentID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}
	return records, nil
}

// UpdateScore implements ResponseRepository.
func (r *responseRepository) UpdateScore(id uuid.UUID, score float64, isCorrect *bool) error {
	updates := map[string]interface{}{
		"score":      score,
		"updated_at": time.Now(),
	}
	if isCorrect != nil {
		updates["is_correct"] = *isCorrect
	}
	result := r.db.Model(&models.ResponseRecord{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update response score: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("response not found")
	}
	return nil
}
