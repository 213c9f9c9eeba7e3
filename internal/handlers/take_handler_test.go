package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/skillbridge-assessment/internal/models"
	"alfredoptarigan/skillbridge-assessment/internal/services"
)

// fakeCollector serves a single assessment under one valid token.
type fakeCollector struct {
	token      string
	assessment *models.Assessment
	responses  []models.ResponseRecord
	count      int64
	submitErr  error
	report     *models.Report
}

func (f *fakeCollector) Open(token string) (*models.Assessment, []models.ResponseRecord, error) {
	if token != f.token {
		return nil, nil, models.ErrInvalidToken
	}
	if f.assessment.Status == models.StatusSubmitted {
		return nil, nil, models.ErrAlreadySubmitted
	}
	return f.assessment, f.responses, nil
}

func (f *fakeCollector) SaveAnswers(token string, answers []models.AnswerPayload) (*models.Assessment, int, error) {
	if token != f.token {
		return nil, 0, models.ErrInvalidToken
	}
	saved := 0
	for _, a := range answers {
		if strings.TrimSpace(a.Answer) != "" {
			saved++
		}
	}
	return f.assessment, saved, nil
}

func (f *fakeCollector) ResponseCount(token string) (*models.Assessment, int64, error) {
	if token != f.token {
		return nil, 0, models.ErrInvalidToken
	}
	if f.assessment.Status == models.StatusSubmitted {
		return nil, 0, models.ErrAlreadySubmitted
	}
	return f.assessment, f.count, nil
}

func (f *fakeCollector) Submit(_ context.Context, token string) (*models.Report, error) {
	if token != f.token {
		return nil, models.ErrInvalidToken
	}
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.report, nil
}

func newTakeApp(collector services.CollectorService) *fiber.App {
	app := fiber.New()
	handler := NewTakeHandler(collector)
	submitHandler := NewSubmitHandler(collector)
	app.Get("/api/v1/assessments/take/:token", handler.HandleTake)
	app.Post("/api/v1/assessments/take/:token", handler.HandleSaveAnswers)
	app.Post("/api/v1/assessments/submit/:token", submitHandler.HandleSubmit)
	return app
}

func testAssessment() *models.Assessment {
	return &models.Assessment{
		ID:              uuid.New(),
		Status:          models.StatusStarted,
		DurationMinutes: 60,
		Questions: []models.FrozenQuestion{
			{ID: uuid.New(), Type: models.QuestionMCQ, Text: "pick one", Section: models.SectionTechnical},
		},
	}
}

func TestHandleTakeReturnsFrozenItems(t *testing.T) {
	collector := &fakeCollector{token: "good", assessment: testAssessment()}
	app := newTakeApp(collector)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments/take/good", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body models.TakeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Status != "started" || len(body.Questions) != 1 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestHandleTakeInvalidTokenIs404(t *testing.T) {
	collector := &fakeCollector{token: "good", assessment: testAssessment()}
	app := newTakeApp(collector)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments/take/bad", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHandleTakeCheckResponses(t *testing.T) {
	collector := &fakeCollector{token: "good", assessment: testAssessment(), count: 3}
	app := newTakeApp(collector)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments/take/good?check_responses=1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body models.ResponseCountResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.ResponseCount != 3 {
		t.Fatalf("expected response_count 3, got %d", body.ResponseCount)
	}
}

func TestHandleTakeSubmittedIs409(t *testing.T) {
	assessment := testAssessment()
	assessment.Status = models.StatusSubmitted
	collector := &fakeCollector{token: "good", assessment: assessment}
	app := newTakeApp(collector)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments/take/good", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestHandleSaveAnswers(t *testing.T) {
	collector := &fakeCollector{token: "good", assessment: testAssessment()}
	app := newTakeApp(collector)

	payload := `{"answers":[{"ref_type":"question","ref_id":"` + uuid.NewString() + `","answer":"B"},{"ref_type":"question","ref_id":"` + uuid.NewString() + `","answer":""}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/take/good", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, raw)
	}

	var body models.SaveAnswersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Saved != 1 || body.Expected != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestHandleSaveAnswersRejectsBadRefType(t *testing.T) {
	collector := &fakeCollector{token: "good", assessment: testAssessment()}
	app := newTakeApp(collector)

	payload := `{"answers":[{"ref_type":"essay","ref_id":"` + uuid.NewString() + `","answer":"B"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/take/good", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHandleSubmit(t *testing.T) {
	report := &models.Report{
		AssessmentID: uuid.New(),
		TotalScore:   20.0,
		Summary:      "Score: 20.0 out of 25.0.",
	}
	collector := &fakeCollector{token: "good", assessment: testAssessment(), report: report}
	app := newTakeApp(collector)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/submit/good", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body models.SubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Status != "submitted" || body.Report == nil || body.Report.TotalScore != 20.0 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestHandleTakeCheckResponsesSubmittedIs409(t *testing.T) {
	assessment := testAssessment()
	assessment.Status = models.StatusSubmitted
	collector := &fakeCollector{token: "good", assessment: assessment, count: 3}
	app := newTakeApp(collector)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments/take/good?check_responses=1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestHandleSubmitScoringFailureHidesInternals(t *testing.T) {
	collector := &fakeCollector{
		token:      "good",
		assessment: testAssessment(),
		submitErr:  errors.New("failed to score assessment: gemini: quota exceeded"),
	}
	app := newTakeApp(collector)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/submit/good", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(raw), "gemini") {
		t.Fatalf("internal error details must not leak: %s", raw)
	}
	if !strings.Contains(string(raw), "contact support") {
		t.Fatalf("expected a support message, got: %s", raw)
	}
}

func TestHandleSubmitConflicts(t *testing.T) {
	tests := []struct {
		name       string
		submitErr  error
		wantStatus int
	}{
		{"already submitted", models.ErrAlreadySubmitted, http.StatusConflict},
		{"nothing to submit", models.ErrNothingToSubmit, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector := &fakeCollector{token: "good", assessment: testAssessment(), submitErr: tt.submitErr}
			app := newTakeApp(collector)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/submit/good", nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
	}
}
