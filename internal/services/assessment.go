package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"alfredoptarigan/skillbridge-assessment/internal/models"
	"alfredoptarigan/skillbridge-assessment/internal/repositories"
)

// maxChosenSkills caps the apply-time skill pick list used for selection.
const maxChosenSkills = 3

// AssessmentService issues assessments: it resolves the candidate's skill
// selection, interprets the blueprint, freezes the selected items, mints the
// access token and persists the session.
type AssessmentService interface {
	CreateForApplication(ctx context.Context, applicationID, blueprintID uuid.UUID) (*models.Assessment, error)
}

type assessmentService struct {
	assessmentRepo  repositories.AssessmentRepository
	applicationRepo repositories.ApplicationRepository
	blueprintRepo   repositories.BlueprintRepository
	skillRepo       repositories.SkillRepository
	selector        SelectorService
	tokens          TokenService
	publisher       EventPublisher
	baseURL         string
}

func NewAssessmentService(
	assessmentRepo repositories.AssessmentRepository,
	applicationRepo repositories.ApplicationRepository,
	blueprintRepo repositories.BlueprintRepository,
	skillRepo repositories.SkillRepository,
	selector SelectorService,
	tokens TokenService,
	publisher EventPublisher,
	baseURL string,
) AssessmentService {
	return &assessmentService{
		assessmentRepo:  assessmentRepo,
		applicationRepo: applicationRepo,
		blueprintRepo:   blueprintRepo,
		skillRepo:       skillRepo,
		selector:        selector,
		tokens:          tokens,
		publisher:       publisher,
		baseURL:         baseURL,
	}
}

// ResolveSkillSelection returns the skills driving item selection for one
// application. Precedence: the explicit apply-time pick list (capped at
// maxChosenSkills) wins; the candidate's declared profile skills are the
// fallback.
func ResolveSkillSelection(chosen, declared []string) []string {
	if len(chosen) > 0 {
		if len(chosen) > maxChosenSkills {
			chosen = chosen[:maxChosenSkills]
		}
		return chosen
	}
	return declared
}

// CreateForApplication implements AssessmentService.
func (s *assessmentService) CreateForApplication(ctx context.Context, applicationID, blueprintID uuid.UUID) (*models.Assessment, error) {
	application, err := s.applicationRepo.FindByID(applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load application: %w", err)
	}

	blueprint, err := s.blueprintRepo.FindByID(blueprintID)
	if err != nil {
		return nil, fmt.Errorf("failed to load blueprint: %w", err)
	}

	chosen, err := s.skillRepo.ChosenSkillNames(applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chosen skills: %w", err)
	}
	skills := ResolveSkillSelection(chosen, application.Student.Skills)

	selection, err := s.selector.Select(blueprint, skills)
	if err != nil {
		// An under-supplied pool is a soft condition: the assessment is
		// still issued, just with fewer (or zero) items.
		if !errors.Is(err, models.ErrNoEligibleContent) {
			return nil, fmt.Errorf("failed to interpret blueprint: %w", err)
		}
		log.Printf("⚠️  Blueprint %s yielded no eligible content for application %s", blueprintID, applicationID)
	}

	token, err := s.tokens.Mint(applicationID, application.StudentID)
	if err != nil {
		return nil, err
	}

	assessment := &models.Assessment{
		ID:              uuid.New(),
		ApplicationID:   applicationID,
		BlueprintID:     blueprintID,
		Questions:       freezeQuestions(selection.Questions),
		Tasks:           freezeTasks(selection.Tasks),
		Token:           token,
		DurationMinutes: blueprint.DurationMinutes,
		Status:          models.StatusInvited,
	}

	if err := s.assessmentRepo.Create(assessment); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/api/v1/assessments/take/%s", s.baseURL, token)
	s.publisher.Publish(ctx, Event{
		Type:    EventAssessmentInvited,
		Subject: "Your assessment invitation",
		Body: fmt.Sprintf(
			"Start your assessment here: %s\nDuration: %d minutes.",
			link, assessment.DurationMinutes,
		),
		Recipients: []string{application.Student.Email},
	})

	log.Printf("✅ Assessment %s issued for application %s (%d questions, %d tasks)",
		assessment.ID, applicationID, len(assessment.Questions), len(assessment.Tasks))
	return assessment, nil
}

// freezeQuestions copies test-facing fields only. The answer key stays
// behind: FrozenQuestion has no field for it.
func freezeQuestions(questions []models.Question) []models.FrozenQuestion {
	frozen := make([]models.FrozenQuestion, 0, len(questions))
	for _, q := range questions {
		frozen = append(frozen, models.FrozenQuestion{
			ID:          q.ID,
			Type:        q.Type,
			Text:        q.Text,
			Choices:     q.Choices,
			Language:    q.Language,
			StarterCode: q.StarterCode,
			Tests:       q.Tests,
			Section:     q.Section,
		})
	}
	return frozen
}

// freezeTasks copies test-facing fields only; the scoring rubric is omitted.
func freezeTasks(tasks []models.Task) []models.FrozenTask {
	frozen := make([]models.FrozenTask, 0, len(tasks))
	for _, t := range tasks {
		frozen = append(frozen, models.FrozenTask{
			ID:           t.ID,
			Type:         t.Type,
			Title:        t.Title,
			Instructions: t.Instructions,
			ArtifactType: t.ArtifactType,
			MaxScore:     t.MaxScore,
		})
	}
	return frozen
}
