package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/skillbridge-assessment/internal/models"
)

type SkillRepository interface {
	// ChosenSkillNames returns the applicant's explicit apply-time skill
	// picks for an application, in insertion order.
	ChosenSkillNames(applicationID uuid.UUID) ([]string, error)
	ListAssessmentSkills() ([]models.AssessmentSkill, error)
}

type skillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

// ChosenSkillNames implements SkillRepository.
func (r *skillRepository) ChosenSkillNames(applicationID uuid.UUID) ([]string, error) {
	var chosen []models.ApplicantChosenSkill
	err := r.db.
		Preload("Skill").
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&chosen).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load chosen skills: %w", err)
	}

	names := make([]string, 0, len(chosen))
	for _, c := range chosen {
		names = append(names, c.Skill.Name)
	}
	return names, nil
}

// ListAssessmentSkills implements SkillRepository.
func (r *skillRepository) ListAssessmentSkills() ([]models.AssessmentSkill, error) {
	var skills []models.AssessmentSkill
	if err := r.db.Order("name ASC").Find(&skills).Error; err != nil {
		return nil, fmt.Errorf("failed to list assessment skills: %w", err)
	}
	return skills, nil
}
