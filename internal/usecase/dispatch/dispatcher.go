package dispatch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/fireflies-agent/internal/domain/entities"
)

// Sink is an external delivery target consuming a validated result.
// Accepts decides applicability per result; the scheduler sink only
// accepts results that requested a follow-up. Send is invoked at most
// once per dispatch and only when Accepts returned true.
type Sink interface {
	Name() string
	Accepts(result *entities.ExtractionResult) bool
	Send(ctx context.Context, result *entities.ExtractionResult) error
}

// Dispatcher fans a validated result out to registered sinks. Sinks are
// independent: one sink failing never blocks or skips another, and no
// error or panic escapes a dispatch call.
type Dispatcher struct {
	sinks       []Sink
	sinkTimeout time.Duration
	logger      *zap.Logger
}

// NewDispatcher creates a dispatcher over an ordered sink registration.
// sinkTimeout bounds each individual Send call; zero means no bound
// beyond the caller's context.
func NewDispatcher(sinks []Sink, sinkTimeout time.Duration, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		sinks:       sinks,
		sinkTimeout: sinkTimeout,
		logger:      logger,
	}
}

// Dispatch invokes each sink in registration order and returns one outcome
// per sink in that same order. A cancelled context aborts the dispatch with
// an error and no outcome slice: a cancelled run never reports partial
// outcomes as if they were final.
func (d *Dispatcher) Dispatch(ctx context.Context, result *entities.ExtractionResult) ([]entities.SinkOutcome, error) {
	outcomes := make([]entities.SinkOutcome, 0, len(d.sinks))

	for _, sink := range d.sinks {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("dispatch aborted: %w", err)
		}

		if !sink.Accepts(result) {
			outcomes = append(outcomes, entities.SinkOutcome{
				SinkName: sink.Name(),
				Status:   entities.SinkStatusSkipped,
			})
			continue
		}

		if err := d.send(ctx, sink, result); err != nil {
			if d.logger != nil {
				d.logger.Warn("sink delivery failed",
					zap.String("sink", sink.Name()),
					zap.Error(err),
				)
			}
			outcomes = append(outcomes, entities.SinkOutcome{
				SinkName: sink.Name(),
				Status:   entities.SinkStatusFailed,
				Detail:   err.Error(),
			})
			continue
		}

		outcomes = append(outcomes, entities.SinkOutcome{
			SinkName: sink.Name(),
			Status:   entities.SinkStatusSucceeded,
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("dispatch aborted: %w", err)
	}

	return outcomes, nil
}

// send runs one sink delivery with a bounded context and panic recovery
func (d *Dispatcher) send(ctx context.Context, sink Sink, result *entities.ExtractionResult) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered: %v", p)
		}
	}()

	sendCtx := ctx
	if d.sinkTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, d.sinkTimeout)
		defer cancel()
	}

	return sink.Send(sendCtx, result)
}
