package handler

import (
	"encoding/json"
	stdErrors "errors"
	"io"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/fireflies-agent/errors"
	webhookdto "github.com/johnquangdev/fireflies-agent/internal/adapter/dto/webhook"
	"github.com/johnquangdev/fireflies-agent/internal/adapter/presenter"
	"github.com/johnquangdev/fireflies-agent/internal/usecase/run"
	"github.com/johnquangdev/fireflies-agent/pkg/webhook"
)

// FirefliesWebhookHandler handles incoming webhooks from Fireflies
type FirefliesWebhookHandler struct {
	svc    run.Service
	secret string
	logger *zap.Logger
}

// NewFirefliesWebhookHandler creates a new handler
func NewFirefliesWebhookHandler(svc run.Service, secret string, logger *zap.Logger) *FirefliesWebhookHandler {
	return &FirefliesWebhookHandler{svc: svc, secret: secret, logger: logger}
}

// HandleFirefliesWebhook receives transcript-ready events from Fireflies.
// A redelivered event is acknowledged without running the pipeline again.
func (h *FirefliesWebhookHandler) HandleFirefliesWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	if h.secret != "" {
		signature := c.Request().Header.Get("X-Hub-Signature")
		if !webhook.VerifyHMAC(h.secret, body, signature) {
			return HandleError(h.logger, c, errors.ErrSignatureInvalid())
		}
	}

	var event webhookdto.FirefliesEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&event); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidInput("meetingId is required"))
	}

	if h.logger != nil {
		h.logger.Info("fireflies webhook received",
			zap.String("meeting_id", event.MeetingID),
			zap.String("event_type", event.EventType),
		)
	}

	report, err := h.svc.Run(c.Request().Context(), event.MeetingID)
	if err != nil {
		var appErr errors.AppError
		if stdErrors.As(err, &appErr) && appErr.Code == errors.ErrorCode_DUPLICATE_DELIVERY {
			// acknowledge so the sender stops redelivering
			return HandleSuccess(h.logger, c, map[string]interface{}{"status": "duplicate"})
		}
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToRunReportResponse(report))
}
