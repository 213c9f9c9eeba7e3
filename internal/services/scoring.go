package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/skillbridge-assessment/internal/models"
	"alfredoptarigan/skillbridge-assessment/internal/repositories"
)

// mcqFullScore is awarded for an exact answer-key match; a miss scores zero.
const mcqFullScore = 10.0

// ScoringService aggregates a submitted assessment's responses into the
// single immutable report.
type ScoringService interface {
	GenerateReport(ctx context.Context, assessment *models.Assessment) (*models.Report, error)
	ReportFor(assessmentID uuid.UUID) (*models.Report, error)
}

type scoringService struct {
	responseRepo   repositories.ResponseRepository
	reportRepo     repositories.ReportRepository
	poolRepo       repositories.PoolRepository
	questionScorer QuestionScorer
	taskScorer     TaskScorer
	publisher      EventPublisher
}

func NewScoringService(
	responseRepo repositories.ResponseRepository,
	reportRepo repositories.ReportRepository,
	poolRepo repositories.PoolRepository,
	questionScorer QuestionScorer,
	taskScorer TaskScorer,
	publisher EventPublisher,
) ScoringService {
	return &scoringService{
		responseRepo:   responseRepo,
		reportRepo:     reportRepo,
		poolRepo:       poolRepo,
		questionScorer: questionScorer,
		taskScorer:     taskScorer,
		publisher:      publisher,
	}
}

// GenerateReport implements ScoringService. MCQs are graded by trimmed
// case-insensitive answer-key comparison; short and code answers go through
// the question scorer, task submissions through the task scorer. Returns
// models.ErrReportAlreadyExists when another submit got there first.
func (s *scoringService) GenerateReport(ctx context.Context, assessment *models.Assessment) (*models.Report, error) {
	responses, err := s.responseRepo.FindByAssessment(assessment.ID)
	if err != nil {
		return nil, err
	}

	var questionResponses, taskResponses []models.ResponseRecord
	for _, response := range responses {
		switch response.RefType {
		case models.RefQuestion:
			questionResponses = append(questionResponses, response)
		case models.RefTask:
			taskResponses = append(taskResponses, response)
		}
	}

	questionIDs := make([]uuid.UUID, 0, len(questionResponses))
	for _, response := range questionResponses {
		questionIDs = append(questionIDs, response.RefID)
	}
	questions, err := s.poolRepo.QuestionsByIDs(questionIDs)
	if err != nil {
		return nil, err
	}
	questionByID := make(map[uuid.UUID]*models.Question, len(questions))
	for i := range questions {
		questionByID[questions[i].ID] = &questions[i]
	}

	taskIDs := make([]uuid.UUID, 0, len(taskResponses))
	for _, response := range taskResponses {
		taskIDs = append(taskIDs, response.RefID)
	}
	tasks, err := s.poolRepo.TasksByIDs(taskIDs)
	if err != nil {
		return nil, err
	}
	taskByID := make(map[uuid.UUID]*models.Task, len(tasks))
	for i := range tasks {
		taskByID[tasks[i].ID] = &tasks[i]
	}

	total := 0.0
	perSkill := map[string]float64{}
	perSection := map[string]float64{
		string(models.SectionTechnical): 0,
		string(models.SectionHR):        0,
		string(models.SectionAptitude):  0,
	}

	for _, response := range questionResponses {
		question, ok := questionByID[response.RefID]
		if !ok {
			// Source question retired after freezing. The response still
			// counts toward the achievable total below.
			log.Printf("⚠️  Question %s missing from pool, skipping response %s", response.RefID, response.ID)
			continue
		}

		var score float64
		switch question.Type {
		case models.QuestionMCQ:
			correct := strings.EqualFold(
				strings.TrimSpace(response.Answer),
				strings.TrimSpace(question.AnswerKey),
			)
			if correct {
				score = mcqFullScore
			}
			if err := s.responseRepo.UpdateScore(response.ID, score, &correct); err != nil {
				return nil, err
			}
		default:
			score = s.questionScorer.ScoreQuestion(ctx, question, response.Answer)
			if err := s.responseRepo.UpdateScore(response.ID, score, nil); err != nil {
				return nil, err
			}
		}

		total += score
		perSection[string(question.Section)] += score
		for _, tag := range question.SkillTags {
			perSkill[tag] += score
		}
	}

	for _, response := range taskResponses {
		task, ok := taskByID[response.RefID]
		if !ok {
			log.Printf("⚠️  Task %s missing from pool, skipping response %s", response.RefID, response.ID)
			continue
		}

		score := s.taskScorer.ScoreTask(ctx, task, response.Answer)
		if err := s.responseRepo.UpdateScore(response.ID, score, nil); err != nil {
			return nil, err
		}

		// Task scores count toward the total and the tasks bucket only;
		// skill buckets are fed by question tags alone.
		total += score
		perSection["tasks"] += score
	}

	if len(perSkill) == 0 {
		perSkill["No skills"] = 0.0
	}

	max := mcqFullScore*float64(len(questionResponses)) + s.taskScorer.Max()*float64(len(taskResponses))
	summary := fmt.Sprintf("Score: %.1f out of %.1f.", total, max)
	if len(responses) == 0 {
		summary = "No responses submitted."
	}

	report := &models.Report{
		AssessmentID: assessment.ID,
		TotalScore:   total,
		PerSkill:     perSkill,
		PerSection:   perSection,
		Summary:      summary,
	}
	if err := s.reportRepo.Create(report); err != nil {
		return nil, err
	}

	s.notify(ctx, assessment, report)
	log.Printf("✅ Report %s generated for assessment %s (total %.1f)", report.ID, assessment.ID, total)
	return report, nil
}

// ReportFor implements ScoringService.
func (s *scoringService) ReportFor(assessmentID uuid.UUID) (*models.Report, error) {
	return s.reportRepo.FindByAssessmentID(assessmentID)
}

func (s *scoringService) notify(ctx context.Context, assessment *models.Assessment, report *models.Report) {
	student := assessment.Application.Student
	job := assessment.Application.Job

	if student.Email != "" {
		s.publisher.Publish(ctx, Event{
			Type:       EventReportReady,
			Subject:    "Your assessment has been scored",
			Body:       report.Summary,
			Recipients: []string{student.Email},
		})
	}
	if job.EmployerEmail != "" {
		s.publisher.Publish(ctx, Event{
			Type:    EventReportCreated,
			Subject: fmt.Sprintf("Assessment report ready for %s", student.FullName),
			Body: fmt.Sprintf("%s completed the assessment for %q. %s",
				student.FullName, job.Title, report.Summary),
			Recipients: []string{job.EmployerEmail},
		})
	}
}
