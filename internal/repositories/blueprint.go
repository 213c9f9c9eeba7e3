package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/skillbridge-assessment/internal/models"
)

type BlueprintRepository interface {
	Create(blueprint *models.Blueprint) error
	FindByID(id uuid.UUID) (*models.Blueprint, error)
	List() ([]models.Blueprint, error)
}

type blueprintRepository struct {
	db *gorm.DB
}

func NewBlueprintRepository(db *gorm.DB) BlueprintRepository {
	return &blueprintRepository{db: db}
}

// Create implements BlueprintRepository.
func (r *blueprintRepository) Create(blueprint *models.Blueprint) error {
	if err := r.db.Create(blueprint).Error; err != nil {
		return fmt.Errorf("failed to create blueprint: %w", err)
	}
	return nil
}

// FindByID implements BlueprintRepository.
func (r *blueprintRepository) FindByID(id uuid.UUID) (*models.Blueprint, error) {
	var blueprint models.Blueprint
	if err := r.db.Where("id = ?", id).First(&blueprint).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("blueprint not found")
		}
		return nil, fmt.Errorf("failed to find blueprint: %w", err)
	}
	return &blueprint, nil
}

// List implements BlueprintRepository.
func (r *blueprintRepository) List() ([]models.Blueprint, error) {
	var blueprints []models.Blueprint
	if err := r.db.Order("created_at DESC").Find(&blueprints).Error; err != nil {
		return nil, fmt.Errorf("failed to list blueprints: %w", err)
	}
	return blueprints, nil
}
