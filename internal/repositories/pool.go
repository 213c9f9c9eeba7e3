package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/skillbridge-assessment/internal/models"
)

// PoolRepository reads the authored question/task pool. The pool is
// read-only from the engine's perspective; authoring happens elsewhere.
type PoolRepository interface {
	ActiveQuestionsByType(qtype models.QuestionType) ([]models.Question, error)
	ActiveTasksByType(ttype models.TaskType) ([]models.Task, error)
	QuestionsByIDs(ids []uuid.UUID) ([]models.Question, error)
	TasksByIDs(ids []uuid.UUID) ([]models.Task, error)
}

type poolRepository struct {
	db *gorm.DB
}

func NewPoolRepository(db *gorm.DB) PoolRepository {
	return &poolRepository{db: db}
}

// ActiveQuestionsByType implements PoolRepository.
func (p *poolRepository) ActiveQuestionsByType(qtype models.QuestionType) ([]models.Question, error) {
	var questions []models.Question
	if err := p.db.
		Where("active = ? AND type = ?", true, qtype).
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to load active %s questions: %w", qtype, err)
	}
	return questions, nil
}

// ActiveTasksByType implements PoolRepository.
func (p *poolRepository) ActiveTasksByType(ttype models.TaskType) ([]models.Task, error) {
	var tasks []models.Task
	if err := p.db.
		Where("active = ? AND type = ?", true, ttype).
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to load active %s tasks: %w", ttype, err)
	}
	return tasks, nil
}

// QuestionsByIDs implements PoolRepository. Inactive questions are excluded:
// scoring skips responses whose source was retired after freezing.
func (p *poolRepository) QuestionsByIDs(ids []uuid.UUID) ([]models.Question, error) {
	var questions []models.Question
	if len(ids) == 0 {
		return questions, nil
	}
	if err := p.db.
		Where("id IN ? AND active = ?", ids, true).
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to load questions by ids: %w", err)
	}
	return questions, nil
}

// TasksByIDs implements PoolRepository.
func (p *poolRepository) TasksByIDs(ids []uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	if len(ids) == 0 {
		return tasks, nil
	}
	if err := p.db.
		Where("id IN ? AND active = ?", ids, true).
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to load tasks by ids: %w", err)
	}
	return tasks, nil
}
