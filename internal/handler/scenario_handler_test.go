package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/plancast/plancast-backend/internal/domain"
	"github.com/plancast/plancast-backend/internal/middleware"
	"github.com/plancast/plancast-backend/internal/service"
	"github.com/plancast/plancast-backend/internal/testutil"
)

// setWorkspace injects an authenticated workspace into the request context
func setWorkspace(c echo.Context, workspaceID int32) {
	ctx := context.WithValue(c.Request().Context(), middleware.WorkspaceIDKey, workspaceID)
	c.SetRequest(c.Request().WithContext(ctx))
}

func newScenarioHandler() (*ScenarioHandler, *testutil.MockScenarioRepository) {
	repo := testutil.NewMockScenarioRepository()
	svc := service.NewScenarioService(repo, service.NewProjectionService(), nil)
	return NewScenarioHandler(svc), repo
}

func seedScenario(repo *testutil.MockScenarioRepository, workspaceID int32) *domain.Scenario {
	scenario := &domain.Scenario{
		WorkspaceID: workspaceID,
		Title:       "Base case",
		Config: domain.ProjectionConfig{
			Months: 12, DefaultVATRate: 0.2, StartYear: 2026, StartMonth: 1, CorporateTaxRate: 0.25,
		},
		Activities: []domain.Activity{{Name: "consulting", UnitPrice: decimal.NewFromInt(100)}},
	}
	created, _ := repo.Create(context.Background(), scenario)
	return created
}

func TestCreateScenario_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newScenarioHandler()

	reqBody := `{
		"title": "Base case",
		"config": {"months": 12, "defaultVatRate": 0.2, "startYear": 2026, "startMonth": 1, "corporateTaxRate": 0.25},
		"activities": [{"name": "consulting", "unitPrice": "100"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scenarios", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setWorkspace(c, 1)

	if err := handler.CreateScenario(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response domain.Scenario
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Title != "Base case" {
		t.Errorf("Expected title 'Base case', got %s", response.Title)
	}
	if response.WorkspaceID != 1 {
		t.Errorf("Expected workspace 1, got %d", response.WorkspaceID)
	}
}

func TestCreateScenario_ValidationError(t *testing.T) {
	e := echo.New()
	handler, _ := newScenarioHandler()

	reqBody := `{"title": "", "config": {"months": 12, "startMonth": 1}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scenarios", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setWorkspace(c, 1)

	if err := handler.CreateScenario(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateScenario_NoWorkspace(t *testing.T) {
	e := echo.New()
	handler, _ := newScenarioHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scenarios", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateScenario(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetScenario_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newScenarioHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/scenarios/:id")
	c.SetParamNames("id")
	c.SetParamValues("11111111-2222-3333-4444-555555555555")
	setWorkspace(c, 1)

	if err := handler.GetScenario(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetScenario_InvalidID(t *testing.T) {
	e := echo.New()
	handler, _ := newScenarioHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/scenarios/:id")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	setWorkspace(c, 1)

	if err := handler.GetScenario(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetScenarios_EmptyList(t *testing.T) {
	e := echo.New()
	handler, _ := newScenarioHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scenarios", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setWorkspace(c, 1)

	if err := handler.GetScenarios(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("Expected empty array, got %s", body)
	}
}

func TestDeleteScenario_Success(t *testing.T) {
	e := echo.New()
	handler, repo := newScenarioHandler()
	created := seedScenario(repo, 1)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/scenarios/:id")
	c.SetParamNames("id")
	c.SetParamValues(created.ID.String())
	setWorkspace(c, 1)

	if err := handler.DeleteScenario(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
	if len(repo.Scenarios) != 0 {
		t.Errorf("Expected scenario to be deleted")
	}
}

func TestDeleteScenario_WrongWorkspace(t *testing.T) {
	e := echo.New()
	handler, repo := newScenarioHandler()
	created := seedScenario(repo, 1)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/scenarios/:id")
	c.SetParamNames("id")
	c.SetParamValues(created.ID.String())
	setWorkspace(c, 2)

	if err := handler.DeleteScenario(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
