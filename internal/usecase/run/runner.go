package run

import (
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/fireflies-agent/errors"
	"github.com/johnquangdev/fireflies-agent/internal/domain/entities"
	domainrepo "github.com/johnquangdev/fireflies-agent/internal/domain/repositories"
	"github.com/johnquangdev/fireflies-agent/internal/usecase/dispatch"
	"github.com/johnquangdev/fireflies-agent/internal/usecase/extract"
)

// Service runs the transcript → extraction → delivery pipeline
type Service interface {
	Run(ctx context.Context, meetingID string) (*entities.RunReport, error)
	GetReport(ctx context.Context, runID string) (*entities.RunReport, error)
	ListReports(ctx context.Context, transcriptID string) ([]*entities.RunReport, error)
}

// DeliveryGuard suppresses duplicate webhook deliveries. Acquire returns
// false when the key was already claimed within the guard's window.
type DeliveryGuard interface {
	Acquire(ctx context.Context, key string) (bool, error)
}

// AuditStore retains raw model output for later inspection
type AuditStore interface {
	PutRawOutput(ctx context.Context, runID string, raw string) error
}

// Runner wires the pipeline stages together. Each run owns its transcript,
// extraction result and report exclusively; the guard and repository are
// the only shared collaborators.
type Runner struct {
	source     extract.TranscriptProvider
	engine     *extract.Engine
	dispatcher *dispatch.Dispatcher
	guard      DeliveryGuard
	audit      AuditStore
	runRepo    domainrepo.RunRepository
	logger     *zap.Logger

	// extraction retry policy; the engine itself never retries
	retryInitialInterval time.Duration
	retryMaxElapsed      time.Duration
}

// NewRunner constructs a Runner. guard, audit and runRepo may be nil when
// the deployment does not enable them.
func NewRunner(
	source extract.TranscriptProvider,
	engine *extract.Engine,
	dispatcher *dispatch.Dispatcher,
	guard DeliveryGuard,
	audit AuditStore,
	runRepo domainrepo.RunRepository,
	logger *zap.Logger,
) *Runner {
	return &Runner{
		source:               source,
		engine:               engine,
		dispatcher:           dispatcher,
		guard:                guard,
		audit:                audit,
		runRepo:              runRepo,
		logger:               logger,
		retryInitialInterval: 2 * time.Second,
		retryMaxElapsed:      30 * time.Second,
	}
}

// Run executes one full pipeline pass for a meeting id
func (r *Runner) Run(ctx context.Context, meetingID string) (*entities.RunReport, error) {
	if meetingID == "" {
		return nil, errors.ErrInvalidInput("meeting id is required")
	}

	if r.guard != nil {
		acquired, err := r.guard.Acquire(ctx, meetingID)
		if err != nil {
			// a broken guard must not stop deliveries
			if r.logger != nil {
				r.logger.Warn("delivery guard unavailable", zap.Error(err))
			}
		} else if !acquired {
			return nil, errors.ErrDuplicateDelivery(meetingID)
		}
	}

	transcript, err := r.source.Fetch(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	result, err := r.extractWithRetry(ctx, transcript)
	if err != nil {
		// extraction failed: no result to deliver, no sink is attempted
		return nil, err
	}

	if r.audit != nil {
		if err := r.audit.PutRawOutput(ctx, transcript.ID, result.RawModelOutput); err != nil && r.logger != nil {
			r.logger.Warn("audit retention failed",
				zap.String("transcript_id", transcript.ID),
				zap.Error(err),
			)
		}
	}

	outcomes, err := r.dispatcher.Dispatch(ctx, result)
	if err != nil {
		return nil, errors.ErrRunAborted(err)
	}

	report := entities.BuildRunReport(transcript.ID, *result, outcomes)

	if r.runRepo != nil {
		if err := r.runRepo.SaveRunReport(ctx, report); err != nil && r.logger != nil {
			r.logger.Error("failed to persist run report",
				zap.String("run_id", report.ID.String()),
				zap.Error(err),
			)
		}
	}

	if r.logger != nil {
		r.logger.Info("run finished",
			zap.String("run_id", report.ID.String()),
			zap.String("transcript_id", report.TranscriptID),
			zap.String("overall_status", string(report.OverallStatus)),
			zap.Int("sinks", len(report.Outcomes)),
		)
	}

	return report, nil
}

// GetReport loads a persisted run report
func (r *Runner) GetReport(ctx context.Context, runID string) (*entities.RunReport, error) {
	if r.runRepo == nil {
		return nil, errors.ErrRunNotFound(runID)
	}
	id, err := uuid.Parse(runID)
	if err != nil {
		return nil, errors.ErrInvalidInput("invalid run id")
	}
	report, err := r.runRepo.GetRunReportByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, errors.ErrRunNotFound(runID)
	}
	return report, nil
}

// ListReports returns the persisted reports for a transcript, newest first
func (r *Runner) ListReports(ctx context.Context, transcriptID string) ([]*entities.RunReport, error) {
	if r.runRepo == nil {
		return []*entities.RunReport{}, nil
	}
	if transcriptID == "" {
		return nil, errors.ErrInvalidInput("transcript id is required")
	}
	return r.runRepo.ListRunReportsByTranscript(ctx, transcriptID)
}

// extractWithRetry applies the caller-side retry policy around extraction.
// Only provider failures are retried; invalid input aborts immediately.
func (r *Runner) extractWithRetry(ctx context.Context, transcript *entities.Transcript) (*entities.ExtractionResult, error) {
	var result *entities.ExtractionResult

	attempt := func() error {
		res, err := r.engine.Extract(ctx, transcript)
		if err != nil {
			var appErr errors.AppError
			if stdErrors.As(err, &appErr) && appErr.Code != errors.ErrorCode_PROVIDER_FAILED {
				return backoff.Permanent(err)
			}
			return err
		}
		result = res
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.retryInitialInterval
	bo.MaxElapsedTime = r.retryMaxElapsed

	if err := backoff.Retry(attempt, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("extraction failed after retries: %w", err)
	}

	return result, nil
}
