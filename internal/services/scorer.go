package services

import (
	"context"

	"alfredoptarigan/skillbridge-assessment/internal/models"
)

// defaultFlatScore is the midpoint award for answers that need human or AI
// review but were scored by the flat fallback.
const defaultFlatScore = 5.0

// QuestionScorer grades free-form question answers (short and code). MCQ
// grading is exact-match and lives in the aggregator, not behind this
// interface.
type QuestionScorer interface {
	ScoreQuestion(ctx context.Context, question *models.Question, answer string) float64
}

// TaskScorer grades task submissions. Max is the per-task ceiling the
// aggregator uses when computing the achievable total.
type TaskScorer interface {
	ScoreTask(ctx context.Context, task *models.Task, answer string) float64
	Max() float64
}

// ConstantQuestionScorer awards every answer the same score. It is the
// default when no AI reviewer is configured.
type ConstantQuestionScorer struct {
	Value float64
}

// ScoreQuestion implements QuestionScorer.
func (s ConstantQuestionScorer) ScoreQuestion(_ context.Context, _ *models.Question, _ string) float64 {
	return s.Value
}

// ConstantTaskScorer awards every submission the same score.
type ConstantTaskScorer struct {
	Value float64
}

// ScoreTask implements TaskScorer.
func (s ConstantTaskScorer) ScoreTask(_ context.Context, _ *models.Task, _ string) float64 {
	return s.Value
}

// Max implements TaskScorer.
func (s ConstantTaskScorer) Max() float64 {
	return s.Value
}

func NewConstantQuestionScorer() QuestionScorer {
	return ConstantQuestionScorer{Value: defaultFlatScore}
}

func NewConstantTaskScorer() TaskScorer {
	return ConstantTaskScorer{Value: defaultFlatScore}
}
