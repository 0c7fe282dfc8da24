package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/plancast/plancast-backend/internal/domain"
	"github.com/plancast/plancast-backend/internal/middleware"
	"github.com/plancast/plancast-backend/internal/service"
)

// ScenarioHandler handles scenario-related HTTP requests
type ScenarioHandler struct {
	scenarioService *service.ScenarioService
}

// NewScenarioHandler creates a new ScenarioHandler
func NewScenarioHandler(scenarioService *service.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{scenarioService: scenarioService}
}

// CreateScenario handles POST /scenarios
func (h *ScenarioHandler) CreateScenario(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var scenario domain.Scenario
	if err := c.Bind(&scenario); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	created, err := h.scenarioService.Create(c.Request().Context(), workspaceID, &scenario)
	if err != nil {
		if isScenarioValidationError(err) {
			return NewValidationError(c, err.Error(), nil)
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to create scenario")
		return NewInternalError(c, "Failed to create scenario")
	}

	return c.JSON(http.StatusCreated, created)
}

// GetScenarios handles GET /scenarios
func (h *ScenarioHandler) GetScenarios(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	scenarios, err := h.scenarioService.List(c.Request().Context(), workspaceID)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to list scenarios")
		return NewInternalError(c, "Failed to list scenarios")
	}
	if scenarios == nil {
		scenarios = []*domain.Scenario{}
	}

	return c.JSON(http.StatusOK, scenarios)
}

// GetScenario handles GET /scenarios/:id
func (h *ScenarioHandler) GetScenario(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid scenario ID", nil)
	}

	scenario, err := h.scenarioService.GetByID(c.Request().Context(), workspaceID, id)
	if err != nil {
		if errors.Is(err, domain.ErrScenarioNotFound) {
			return NewNotFoundError(c, "Scenario not found")
		}
		log.Error().Err(err).Str("scenario_id", id.String()).Msg("Failed to get scenario")
		return NewInternalError(c, "Failed to get scenario")
	}

	return c.JSON(http.StatusOK, scenario)
}

// UpdateScenario handles PUT /scenarios/:id
func (h *ScenarioHandler) UpdateScenario(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid scenario ID", nil)
	}

	var scenario domain.Scenario
	if err := c.Bind(&scenario); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	scenario.ID = id

	updated, err := h.scenarioService.Update(c.Request().Context(), workspaceID, &scenario)
	if err != nil {
		if errors.Is(err, domain.ErrScenarioNotFound) {
			return NewNotFoundError(c, "Scenario not found")
		}
		if isScenarioValidationError(err) {
			return NewValidationError(c, err.Error(), nil)
		}
		log.Error().Err(err).Str("scenario_id", id.String()).Msg("Failed to update scenario")
		return NewInternalError(c, "Failed to update scenario")
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteScenario handles DELETE /scenarios/:id
func (h *ScenarioHandler) DeleteScenario(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid scenario ID", nil)
	}

	if err := h.scenarioService.Delete(c.Request().Context(), workspaceID, id); err != nil {
		if errors.Is(err, domain.ErrScenarioNotFound) {
			return NewNotFoundError(c, "Scenario not found")
		}
		log.Error().Err(err).Str("scenario_id", id.String()).Msg("Failed to delete scenario")
		return NewInternalError(c, "Failed to delete scenario")
	}

	return c.NoContent(http.StatusNoContent)
}

// isScenarioValidationError reports whether err is one of the scenario
// input validation sentinels.
func isScenarioValidationError(err error) bool {
	return errors.Is(err, domain.ErrScenarioTitleEmpty) ||
		errors.Is(err, domain.ErrScenarioTitleTooLong) ||
		errors.Is(err, domain.ErrScenarioDescTooLong) ||
		errors.Is(err, domain.ErrScenarioMonthsInvalid) ||
		errors.Is(err, domain.ErrScenarioStartMonthRange) ||
		errors.Is(err, domain.ErrActivityNameEmpty) ||
		errors.Is(err, domain.ErrActivityNameTooLong) ||
		errors.Is(err, domain.ErrDuplicateActivity) ||
		errors.Is(err, domain.ErrLoanAmountInvalid) ||
		errors.Is(err, domain.ErrLoanMonthsInvalid)
}
