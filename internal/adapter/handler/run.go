package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/fireflies-agent/errors"
	rundto "github.com/johnquangdev/fireflies-agent/internal/adapter/dto/run"
	"github.com/johnquangdev/fireflies-agent/internal/adapter/presenter"
	"github.com/johnquangdev/fireflies-agent/internal/usecase/run"
)

// RunHandler exposes manual run triggering and run report lookup
type RunHandler struct {
	svc    run.Service
	logger *zap.Logger
}

// NewRunHandler creates a new handler
func NewRunHandler(svc run.Service, logger *zap.Logger) *RunHandler {
	return &RunHandler{svc: svc, logger: logger}
}

// TriggerRun starts a pipeline run for a meeting id
func (h *RunHandler) TriggerRun(c echo.Context) error {
	var req rundto.TriggerRunRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidInput("meeting_id is required"))
	}

	report, err := h.svc.Run(c.Request().Context(), req.MeetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToRunReportResponse(report))
}

// GetRun returns a persisted run report by id
func (h *RunHandler) GetRun(c echo.Context) error {
	report, err := h.svc.GetReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToRunReportResponse(report))
}

// ListRuns returns the persisted run reports for a meeting, newest first
func (h *RunHandler) ListRuns(c echo.Context) error {
	reports, err := h.svc.ListReports(c.Request().Context(), c.QueryParam("meeting_id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	out := make([]*rundto.RunReportResponse, 0, len(reports))
	for _, report := range reports {
		out = append(out, presenter.ToRunReportResponse(report))
	}

	return HandleSuccess(h.logger, c, out)
}
