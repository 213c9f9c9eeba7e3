package services

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"alfredoptarigan/skillbridge-assessment/internal/models"
)

func TestResolveSkillSelection(t *testing.T) {
	tests := []struct {
		name     string
		chosen   []string
		declared []string
		want     []string
	}{
		{
			name:     "explicit picks win over profile",
			chosen:   []string{"Python"},
			declared: []string{"CSS", "React"},
			want:     []string{"Python"},
		},
		{
			name:     "explicit picks capped at three",
			chosen:   []string{"Python", "CSS", "React", "Django"},
			declared: nil,
			want:     []string{"Python", "CSS", "React"},
		},
		{
			name:     "profile is the fallback",
			chosen:   nil,
			declared: []string{"CSS", "React"},
			want:     []string{"CSS", "React"},
		},
		{
			name: "both empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSkillSelection(tt.chosen, tt.declared)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFrozenQuestionOmitsAnswerKey(t *testing.T) {
	question := models.Question{
		ID:        uuid.New(),
		Type:      models.QuestionMCQ,
		Text:      "pick one",
		Choices:   []models.Choice{{Key: "A", Text: "first"}},
		AnswerKey: "A",
		Section:   models.SectionTechnical,
	}

	frozen := freezeQuestions([]models.Question{question})
	raw, err := json.Marshal(frozen)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "answer") || strings.Contains(string(raw), "Answer") {
		t.Fatalf("frozen payload must have no answer field at all: %s", raw)
	}
}

func TestFrozenTaskOmitsRubric(t *testing.T) {
	task := models.Task{
		ID:           uuid.New(),
		Type:         models.TaskUpload,
		Title:        "banner",
		Instructions: "design it",
		Rubric:       datatypes.JSON(`{"secret":"criteria"}`),
		MaxScore:     10,
	}

	frozen := freezeTasks([]models.Task{task})
	raw, err := json.Marshal(frozen)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "rubric") || strings.Contains(string(raw), "criteria") {
		t.Fatalf("frozen payload leaks the rubric: %s", raw)
	}
}

func newIssuerFixture(t *testing.T, pool *fakePoolRepository, chosen []string) (AssessmentService, *fakeAssessmentRepository, *capturingPublisher, uuid.UUID, uuid.UUID) {
	t.Helper()

	applicationID := uuid.New()
	applicationRepo := &fakeApplicationRepository{
		applications: map[uuid.UUID]*models.Application{
			applicationID: {
				ID:        applicationID,
				StudentID: uuid.New(),
				Student: models.StudentProfile{
					Email:  "ada@example.com",
					Skills: []string{"CSS"},
				},
			},
		},
	}

	rules, err := json.Marshal(models.InternshipRules{MCQCount: 2})
	if err != nil {
		t.Fatal(err)
	}
	blueprintID := uuid.New()
	blueprintRepo := &fakeBlueprintRepository{
		blueprints: map[uuid.UUID]*models.Blueprint{
			blueprintID: {
				ID:              blueprintID,
				Kind:            models.KindInternship,
				Rules:           datatypes.JSON(rules),
				DurationMinutes: 45,
			},
		},
	}

	assessmentRepo := newFakeAssessmentRepository()
	publisher := &capturingPublisher{}
	issuer := NewAssessmentService(
		assessmentRepo,
		applicationRepo,
		blueprintRepo,
		&fakeSkillRepository{chosen: map[uuid.UUID][]string{applicationID: chosen}},
		newTestSelector(pool, 9),
		NewTokenService("test-secret"),
		publisher,
		"http://localhost:3000",
	)
	return issuer, assessmentRepo, publisher, applicationID, blueprintID
}

func TestCreateForApplicationIssuesInvitedAssessment(t *testing.T) {
	pool := &fakePoolRepository{questions: []models.Question{mcq("Python"), mcq("Python")}}
	issuer, _, publisher, applicationID, blueprintID := newIssuerFixture(t, pool, []string{"Python"})

	assessment, err := issuer.CreateForApplication(context.Background(), applicationID, blueprintID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assessment.Status != models.StatusInvited {
		t.Fatalf("expected invited, got %s", assessment.Status)
	}
	if assessment.DurationMinutes != 45 {
		t.Fatalf("duration must come from the blueprint, got %d", assessment.DurationMinutes)
	}
	if len(assessment.Questions) != 2 {
		t.Fatalf("expected 2 frozen questions, got %d", len(assessment.Questions))
	}
	if assessment.Token == "" {
		t.Fatal("expected a minted token")
	}

	if len(publisher.events) != 1 || publisher.events[0].Type != EventAssessmentInvited {
		t.Fatalf("expected one invite event, got %+v", publisher.events)
	}
	invite := publisher.events[0]
	if invite.Recipients[0] != "ada@example.com" {
		t.Fatalf("invite must go to the student, got %v", invite.Recipients)
	}
	if !strings.Contains(invite.Body, assessment.Token) {
		t.Fatal("invite body must carry the take link")
	}
}

func TestCreateForApplicationProceedsOnEmptyPool(t *testing.T) {
	issuer, _, publisher, applicationID, blueprintID := newIssuerFixture(t, &fakePoolRepository{}, nil)

	assessment, err := issuer.CreateForApplication(context.Background(), applicationID, blueprintID)
	if err != nil {
		t.Fatalf("an under-supplied pool must not fail issuance: %v", err)
	}
	if len(assessment.Questions) != 0 || len(assessment.Tasks) != 0 {
		t.Fatalf("expected an empty assessment, got %+v", assessment)
	}
	if len(publisher.events) != 1 {
		t.Fatal("the invite is still sent for an empty assessment")
	}
}

func TestCreateForApplicationRejectsDuplicate(t *testing.T) {
	pool := &fakePoolRepository{questions: []models.Question{mcq("Python")}}
	issuer, _, _, applicationID, blueprintID := newIssuerFixture(t, pool, []string{"Python"})

	if _, err := issuer.CreateForApplication(context.Background(), applicationID, blueprintID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := issuer.CreateForApplication(context.Background(), applicationID, blueprintID); !errors.Is(err, models.ErrAssessmentExists) {
		t.Fatalf("expected ErrAssessmentExists, got %v", err)
	}
}
