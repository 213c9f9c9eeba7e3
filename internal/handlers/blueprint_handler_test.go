package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/skillbridge-assessment/internal/models"
)

type fakeBlueprintRepo struct {
	created []*models.Blueprint
}

func (f *fakeBlueprintRepo) Create(blueprint *models.Blueprint) error {
	f.created = append(f.created, blueprint)
	return nil
}

func (f *fakeBlueprintRepo) FindByID(id uuid.UUID) (*models.Blueprint, error) {
	for _, b := range f.created {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, fmt.Errorf("blueprint not found")
}

func (f *fakeBlueprintRepo) List() ([]models.Blueprint, error) {
	out := make([]models.Blueprint, 0, len(f.created))
	for _, b := range f.created {
		out = append(out, *b)
	}
	return out, nil
}

func newBlueprintApp(repo *fakeBlueprintRepo) *fiber.App {
	app := fiber.New()
	handler := NewBlueprintHandler(repo)
	app.Post("/api/v1/blueprints", handler.HandleCreate)
	app.Get("/api/v1/blueprints", handler.HandleList)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, payload string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestHandleCreateBlueprintInternship(t *testing.T) {
	repo := &fakeBlueprintRepo{}
	app := newBlueprintApp(repo)

	payload := `{
		"name": "Internship screening",
		"kind": "internship",
		"rules": {"mcq": 10, "short": 2, "code": {"enabled": true, "languages": ["python"]}},
		"duration_minutes": 60
	}`
	resp := postJSON(t, app, "/api/v1/blueprints", payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if len(repo.created) != 1 || repo.created[0].Kind != models.KindInternship {
		t.Fatalf("unexpected stored blueprint: %+v", repo.created)
	}
}

func TestHandleCreateBlueprintRejectsBadSectionType(t *testing.T) {
	repo := &fakeBlueprintRepo{}
	app := newBlueprintApp(repo)

	payload := `{
		"name": "Gig screening",
		"kind": "gig",
		"rules": {"sections": [{"type": "essay", "count": 1}]},
		"duration_minutes": 45
	}`
	resp := postJSON(t, app, "/api/v1/blueprints", payload)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if len(repo.created) != 0 {
		t.Fatal("invalid rules must not be stored")
	}
}

func TestHandleCreateBlueprintRejectsBadDuration(t *testing.T) {
	repo := &fakeBlueprintRepo{}
	app := newBlueprintApp(repo)

	payload := `{
		"name": "Too short",
		"kind": "internship",
		"rules": {"mcq": 5, "short": 0, "code": {"enabled": false}},
		"duration_minutes": 5
	}`
	resp := postJSON(t, app, "/api/v1/blueprints", payload)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
