package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/skillbridge-assessment/internal/models"
)

type fakePoolRepository struct {
	questions []models.Question
	tasks     []models.Task
}

func (f *fakePoolRepository) ActiveQuestionsByType(qtype models.QuestionType) ([]models.Question, error) {
	var out []models.Question
	for _, q := range f.questions {
		if q.Active && q.Type == qtype {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakePoolRepository) ActiveTasksByType(ttype models.TaskType) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.Active && t.Type == ttype {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakePoolRepository) QuestionsByIDs(ids []uuid.UUID) ([]models.Question, error) {
	var out []models.Question
	for _, q := range f.questions {
		if !q.Active {
			continue
		}
		for _, id := range ids {
			if q.ID == id {
				out = append(out, q)
				break
			}
		}
	}
	return out, nil
}

func (f *fakePoolRepository) TasksByIDs(ids []uuid.UUID) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if !t.Active {
			continue
		}
		for _, id := range ids {
			if t.ID == id {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

type fakeAssessmentRepository struct {
	byToken       map[string]*models.Assessment
	byApplication map[uuid.UUID]*models.Assessment
}

func newFakeAssessmentRepository() *fakeAssessmentRepository {
	return &fakeAssessmentRepository{
		byToken:       map[string]*models.Assessment{},
		byApplication: map[uuid.UUID]*models.Assessment{},
	}
}

func (f *fakeAssessmentRepository) Create(assessment *models.Assessment) error {
	if _, exists := f.byApplication[assessment.ApplicationID]; exists {
		return models.ErrAssessmentExists
	}
	f.byToken[assessment.Token] = assessment
	f.byApplication[assessment.ApplicationID] = assessment
	return nil
}

func (f *fakeAssessmentRepository) FindByToken(token string) (*models.Assessment, error) {
	assessment, ok := f.byToken[token]
	if !ok {
		return nil, models.ErrInvalidToken
	}
	copied := *assessment
	return &copied, nil
}

func (f *fakeAssessmentRepository) FindByApplicationID(applicationID uuid.UUID) (*models.Assessment, error) {
	assessment, ok := f.byApplication[applicationID]
	if !ok {
		return nil, fmt.Errorf("assessment not found for application %s", applicationID)
	}
	return assessment, nil
}

func (f *fakeAssessmentRepository) MarkStarted(id uuid.UUID, at time.Time) (bool, error) {
	for _, assessment := range f.byToken {
		if assessment.ID == id {
			if assessment.Status != models.StatusInvited {
				return false, nil
			}
			assessment.Status = models.StatusStarted
			assessment.StartedAt = &at
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAssessmentRepository) MarkSubmitted(id uuid.UUID, at time.Time) (bool, error) {
	for _, assessment := range f.byToken {
		if assessment.ID == id {
			if assessment.Status == models.StatusSubmitted {
				return false, nil
			}
			assessment.Status = models.StatusSubmitted
			assessment.SubmittedAt = &at
			return true, nil
		}
	}
	return false, nil
}

type fakeResponseRepository struct {
	records []models.ResponseRecord
}

func (f *fakeResponseRepository) key(r *models.ResponseRecord) string {
	return fmt.Sprintf("%s/%s/%s", r.AssessmentID, r.RefType, r.RefID)
}

func (f *fakeResponseRepository) Upsert(record *models.ResponseRecord) error {
	for i := range f.records {
		if f.key(&f.records[i]) == f.key(record) {
			f.records[i].Answer = record.Answer
			return nil
		}
	}
	record.ID = uuid.New()
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeResponseRepository) CountByAssessment(assessmentID uuid.UUID) (int64, error) {
	var count int64
	for _, r := range f.records {
		if r.AssessmentID == assessmentID {
			count++
		}
	}
	return count, nil
}

func (f *fakeResponseRepository) FindByAssessment(assessmentID uuid.UUID) ([]models.ResponseRecord, error) {
	var out []models.ResponseRecord
	for _, r := range f.records {
		if r.AssessmentID == assessmentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResponseRepository) UpdateScore(id uuid.UUID, score float64, isCorrect *bool) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Score = score
			f.records[i].IsCorrect = isCorrect
			return nil
		}
	}
	return fmt.Errorf("response not found")
}

type fakeReportRepository struct {
	reports map[uuid.UUID]*models.Report
}

func newFakeReportRepository() *fakeReportRepository {
	return &fakeReportRepository{reports: map[uuid.UUID]*models.Report{}}
}

func (f *fakeReportRepository) Create(report *models.Report) error {
	if _, exists := f.reports[report.AssessmentID]; exists {
		return models.ErrReportAlreadyExists
	}
	report.ID = uuid.New()
	f.reports[report.AssessmentID] = report
	return nil
}

func (f *fakeReportRepository) FindByAssessmentID(assessmentID uuid.UUID) (*models.Report, error) {
	report, ok := f.reports[assessmentID]
	if !ok {
		return nil, fmt.Errorf("report not found for assessment %s", assessmentID)
	}
	return report, nil
}

type fakeApplicationRepository struct {
	applications map[uuid.UUID]*models.Application
}

func (f *fakeApplicationRepository) FindByID(id uuid.UUID) (*models.Application, error) {
	application, ok := f.applications[id]
	if !ok {
		return nil, fmt.Errorf("application not found")
	}
	return application, nil
}

type fakeBlueprintRepository struct {
	blueprints map[uuid.UUID]*models.Blueprint
}

func (f *fakeBlueprintRepository) Create(blueprint *models.Blueprint) error {
	f.blueprints[blueprint.ID] = blueprint
	return nil
}

func (f *fakeBlueprintRepository) FindByID(id uuid.UUID) (*models.Blueprint, error) {
	blueprint, ok := f.blueprints[id]
	if !ok {
		return nil, fmt.Errorf("blueprint not found")
	}
	return blueprint, nil
}

func (f *fakeBlueprintRepository) List() ([]models.Blueprint, error) {
	var out []models.Blueprint
	for _, b := range f.blueprints {
		out = append(out, *b)
	}
	return out, nil
}

type fakeSkillRepository struct {
	chosen map[uuid.UUID][]string
}

func (f *fakeSkillRepository) ChosenSkillNames(applicationID uuid.UUID) ([]string, error) {
	return f.chosen[applicationID], nil
}

func (f *fakeSkillRepository) ListAssessmentSkills() ([]models.AssessmentSkill, error) {
	return nil, nil
}

type capturingPublisher struct {
	events []Event
}

func (p *capturingPublisher) Publish(_ context.Context, event Event) {
	p.events = append(p.events, event)
}
