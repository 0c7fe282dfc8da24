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

// ProjectionHandler handles projection-related HTTP requests
type ProjectionHandler struct {
	scenarioService *service.ScenarioService
}

// NewProjectionHandler creates a new ProjectionHandler
func NewProjectionHandler(scenarioService *service.ScenarioService) *ProjectionHandler {
	return &ProjectionHandler{scenarioService: scenarioService}
}

// ProjectScenario handles POST /scenarios/:id/projection. It computes the
// full projection for a stored scenario.
func (h *ProjectionHandler) ProjectScenario(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid scenario ID", nil)
	}

	result, err := h.scenarioService.Project(c.Request().Context(), workspaceID, id)
	if err != nil {
		if errors.Is(err, domain.ErrScenarioNotFound) {
			return NewNotFoundError(c, "Scenario not found")
		}
		log.Error().Err(err).Str("scenario_id", id.String()).Msg("Failed to compute projection")
		return NewInternalError(c, "Failed to compute projection")
	}

	return c.JSON(http.StatusOK, result)
}

// PreviewProjection handles POST /projections/preview. It computes a
// projection over a scenario supplied in the request body without saving it.
func (h *ProjectionHandler) PreviewProjection(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var scenario domain.Scenario
	if err := c.Bind(&scenario); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	scenario.WorkspaceID = workspaceID

	result, err := h.scenarioService.Preview(&scenario)
	if err != nil {
		if isScenarioValidationError(err) {
			return NewValidationError(c, err.Error(), nil)
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to preview projection")
		return NewInternalError(c, "Failed to preview projection")
	}

	return c.JSON(http.StatusOK, result)
}
