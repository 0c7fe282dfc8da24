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

// ExportHandler handles report export HTTP requests
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportScenarioCSV handles POST /scenarios/:id/export. It renders the
// projection as CSV, stores it, and returns a temporary download URL.
func (h *ExportHandler) ExportScenarioCSV(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid scenario ID", nil)
	}

	result, err := h.exportService.ExportCSV(c.Request().Context(), workspaceID, id)
	if err != nil {
		if errors.Is(err, domain.ErrScenarioNotFound) {
			return NewNotFoundError(c, "Scenario not found")
		}
		log.Error().Err(err).Str("scenario_id", id.String()).Msg("Failed to export scenario")
		return NewInternalError(c, "Failed to export scenario")
	}

	return c.JSON(http.StatusCreated, result)
}
