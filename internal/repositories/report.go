package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/skillbridge-assessment/internal/models"
)

type ReportRepository interface {
	// Create inserts the single report for an assessment. A second insert
	// for the same assessment fails with models.ErrReportAlreadyExists.
	Create(report *models.Report) error
	FindByAssessmentID(assessmentID uuid.UUID) (*models.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// Create implements ReportRepository.
func (r *reportRepository) Create(report *models.Report) error {
	if err := r.db.Create(report).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrReportAlreadyExists
		}
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// FindByAssessmentID implements ReportRepository.
func (r *reportRepository) FindByAssessmentID(assessmentID uuid.UUID) (*models.Report, error) {
	var report models.Report
	err := r.db.Where("assessment_id = ?", assessmentID).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("report not found for assessment %s", assessmentID)
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return &report, nil
}
