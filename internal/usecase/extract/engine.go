package extract

import (
	"context"
	stdErrors "errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/fireflies-agent/errors"
	"github.com/johnquangdev/fireflies-agent/internal/domain/entities"
)

// Engine sends transcript text to the language model and produces a
// validated ExtractionResult. It performs exactly one provider call per
// Extract; retrying is the caller's responsibility.
type Engine struct {
	provider  LanguageModelProvider
	validator *Validator
	identity  Identity
	timeout   time.Duration
	logger    *zap.Logger
}

// NewEngine constructs an extraction engine
func NewEngine(provider LanguageModelProvider, identity Identity, timeout time.Duration, logger *zap.Logger) *Engine {
	return &Engine{
		provider:  provider,
		validator: NewValidator(),
		identity:  identity,
		timeout:   timeout,
		logger:    logger,
	}
}

// Extract analyzes a transcript. Empty transcript text fails fast without
// touching the provider. Provider failures surface as PROVIDER_FAILED for
// the caller's retry policy; the raw model text is handed to the validator
// untouched, so a malformed response never fails the extraction.
func (e *Engine) Extract(ctx context.Context, transcript *entities.Transcript) (*entities.ExtractionResult, error) {
	if transcript == nil || strings.TrimSpace(transcript.Text) == "" {
		return nil, errors.ErrInvalidInput("transcript text is empty")
	}

	prompt := BuildPrompt(transcript, e.identity)

	callCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	rawText, err := e.provider.Complete(callCtx, prompt)
	if err != nil {
		var appErr errors.AppError
		if stdErrors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, errors.ErrProviderFailed("language-model", err)
	}

	result := e.validator.Validate(rawText)

	if e.logger != nil {
		e.logger.Info("transcript analyzed",
			zap.String("transcript_id", transcript.ID),
			zap.Int("action_items", len(result.ActionItems)),
			zap.Bool("follow_up_requested", result.FollowUpRequested),
			zap.Bool("used_fallback", result.UsedFallback),
		)
	}

	return result, nil
}
