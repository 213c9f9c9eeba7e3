package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/skillbridge-assessment/internal/models"
	"alfredoptarigan/skillbridge-assessment/internal/repositories"
)

// CollectorService runs the candidate-facing session: opening the assessment,
// collecting answers and handling the one-shot submission.
type CollectorService interface {
	Open(token string) (*models.Assessment, []models.ResponseRecord, error)
	SaveAnswers(token string, answers []models.AnswerPayload) (*models.Assessment, int, error)
	ResponseCount(token string) (*models.Assessment, int64, error)
	Submit(ctx context.Context, token string) (*models.Report, error)
}

type collectorService struct {
	assessmentRepo repositories.AssessmentRepository
	responseRepo   repositories.ResponseRepository
	scoring        ScoringService
	publisher      EventPublisher
}

func NewCollectorService(
	assessmentRepo repositories.AssessmentRepository,
	responseRepo repositories.ResponseRepository,
	scoring ScoringService,
	publisher EventPublisher,
) CollectorService {
	return &collectorService{
		assessmentRepo: assessmentRepo,
		responseRepo:   responseRepo,
		scoring:        scoring,
		publisher:      publisher,
	}
}

// Open implements CollectorService. Opening an invited assessment starts the
// session; reopening a started one is a no-op.
func (c *collectorService) Open(token string) (*models.Assessment, []models.ResponseRecord, error) {
	assessment, err := c.assessmentRepo.FindByToken(token)
	if err != nil {
		return nil, nil, err
	}
	if assessment.Status == models.StatusSubmitted {
		return nil, nil, models.ErrAlreadySubmitted
	}

	if err := c.ensureStarted(assessment); err != nil {
		return nil, nil, err
	}

	responses, err := c.responseRepo.FindByAssessment(assessment.ID)
	if err != nil {
		return nil, nil, err
	}
	return assessment, responses, nil
}

// SaveAnswers implements CollectorService. Saving is idempotent per item: a
// resubmitted answer overwrites the stored one. Blank answers and answers for
// items outside the frozen set are silently discarded.
func (c *collectorService) SaveAnswers(token string, answers []models.AnswerPayload) (*models.Assessment, int, error) {
	assessment, err := c.assessmentRepo.FindByToken(token)
	if err != nil {
		return nil, 0, err
	}
	if assessment.Status == models.StatusSubmitted {
		return nil, 0, models.ErrAlreadySubmitted
	}

	// Posting answers counts as activity even when the candidate skipped
	// the GET that normally starts the session.
	if err := c.ensureStarted(assessment); err != nil {
		return nil, 0, err
	}

	saved := 0
	for _, answer := range answers {
		text := strings.TrimSpace(answer.Answer)
		if text == "" {
			continue
		}
		refID, err := uuid.Parse(answer.RefID)
		if err != nil {
			continue
		}
		refType := models.RefType(answer.RefType)
		if !assessment.HasItem(refType, refID) {
			log.Printf("⚠️  Discarding answer for %s %s outside assessment %s", answer.RefType, refID, assessment.ID)
			continue
		}

		record := &models.ResponseRecord{
			AssessmentID: assessment.ID,
			RefType:      refType,
			RefID:        refID,
			Answer:       text,
		}
		if err := c.responseRepo.Upsert(record); err != nil {
			return nil, saved, fmt.Errorf("failed to save answer: %w", err)
		}
		saved++
	}

	return assessment, saved, nil
}

// ResponseCount implements CollectorService. A pure read: it never starts the
// session or mutates anything. Submitted sessions are rejected like every
// other take operation.
func (c *collectorService) ResponseCount(token string) (*models.Assessment, int64, error) {
	assessment, err := c.assessmentRepo.FindByToken(token)
	if err != nil {
		return nil, 0, err
	}
	if assessment.Status == models.StatusSubmitted {
		return nil, 0, models.ErrAlreadySubmitted
	}
	count, err := c.responseRepo.CountByAssessment(assessment.ID)
	if err != nil {
		return nil, 0, err
	}
	return assessment, count, nil
}

// Submit implements CollectorService. The guarded status flip makes the first
// concurrent submit win; everyone else gets ErrAlreadySubmitted. Scoring runs
// synchronously after the flip; a scoring failure leaves the assessment
// submitted with no report, which an operator has to regenerate out of band.
func (c *collectorService) Submit(ctx context.Context, token string) (*models.Report, error) {
	assessment, err := c.assessmentRepo.FindByToken(token)
	if err != nil {
		return nil, err
	}
	if assessment.Status == models.StatusSubmitted {
		return nil, models.ErrAlreadySubmitted
	}

	count, err := c.responseRepo.CountByAssessment(assessment.ID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, models.ErrNothingToSubmit
	}

	now := time.Now()
	flipped, err := c.assessmentRepo.MarkSubmitted(assessment.ID, now)
	if err != nil {
		return nil, err
	}
	if !flipped {
		return nil, models.ErrAlreadySubmitted
	}
	assessment.Status = models.StatusSubmitted
	assessment.SubmittedAt = &now

	report, err := c.scoring.GenerateReport(ctx, assessment)
	if err != nil {
		if errors.Is(err, models.ErrReportAlreadyExists) {
			return c.scoring.ReportFor(assessment.ID)
		}

		log.Printf("❌ Scoring failed for assessment %s: %v", assessment.ID, err)
		c.publisher.Publish(ctx, Event{
			Type:    EventReportFailed,
			Subject: fmt.Sprintf("Scoring failed for assessment %s", assessment.ID),
			Body:    err.Error(),
		})
		return nil, fmt.Errorf("failed to score assessment: %w", err)
	}
	return report, nil
}

// ensureStarted flips invited -> started exactly once. The guarded update
// means a concurrent opener that lost the race just keeps going.
func (c *collectorService) ensureStarted(assessment *models.Assessment) error {
	if assessment.Status != models.StatusInvited {
		return nil
	}

	now := time.Now()
	started, err := c.assessmentRepo.MarkStarted(assessment.ID, now)
	if err != nil {
		return err
	}
	if started {
		assessment.Status = models.StatusStarted
		assessment.StartedAt = &now
	} else {
		assessment.Status = models.StatusStarted
	}
	return nil
}
