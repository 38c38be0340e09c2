package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/fireflies-agent/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	runHandler     *RunHandler
	webhookHandler *FirefliesWebhookHandler
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, runHandler *RunHandler, webhookHandler *FirefliesWebhookHandler) *Router {
	return &Router{
		cfg:            cfg,
		runHandler:     runHandler,
		webhookHandler: webhookHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	v1.POST("/webhooks/fireflies", rt.webhookHandler.HandleFirefliesWebhook)
	v1.POST("/runs", rt.runHandler.TriggerRun)
	v1.GET("/runs", rt.runHandler.ListRuns)
	v1.GET("/runs/:id", rt.runHandler.GetRun)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
