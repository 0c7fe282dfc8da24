package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/plancast/plancast-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(
	e *echo.Echo,
	tokenAuth *middleware.APITokenAuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	scenarioHandler *ScenarioHandler,
	projectionHandler *ProjectionHandler,
	exportHandler *ExportHandler,
	apiTokenHandler *APITokenHandler,
	wsHandler *WebSocketHandler,
) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(tokenAuth.Authenticate())
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Scenario routes
	scenarios := api.Group("/scenarios")
	scenarios.POST("", scenarioHandler.CreateScenario)
	scenarios.GET("", scenarioHandler.GetScenarios)
	scenarios.GET("/:id", scenarioHandler.GetScenario)
	scenarios.PUT("/:id", scenarioHandler.UpdateScenario)
	scenarios.DELETE("/:id", scenarioHandler.DeleteScenario)

	// Projection routes
	scenarios.POST("/:id/projection", projectionHandler.ProjectScenario)
	api.POST("/projections/preview", projectionHandler.PreviewProjection)

	// Export routes
	scenarios.POST("/:id/export", exportHandler.ExportScenarioCSV)

	// API token management
	tokens := api.Group("/api-tokens")
	tokens.POST("", apiTokenHandler.CreateAPIToken)
	tokens.GET("", apiTokenHandler.GetAPITokens)
	tokens.DELETE("/:id", apiTokenHandler.RevokeAPIToken)

	// WebSocket endpoint (token via query parameter)
	e.GET("/ws", wsHandler.HandleWS)
}
