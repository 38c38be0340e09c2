package entities

import (
	"time"

	"github.com/google/uuid"
)

// SinkStatus is the delivery status of one sink
type SinkStatus string

const (
	SinkStatusSucceeded SinkStatus = "succeeded"
	SinkStatusFailed    SinkStatus = "failed"
	SinkStatusSkipped   SinkStatus = "skipped"
)

// RunStatus is the aggregate status of a run
type RunStatus string

const (
	RunStatusSucceeded      RunStatus = "succeeded"
	RunStatusPartialFailure RunStatus = "partial_failure"
)

// SinkOutcome records the result of one sink delivery, in registration order
type SinkOutcome struct {
	SinkName string     `json:"sink_name"`
	Status   SinkStatus `json:"status"`
	Detail   string     `json:"detail,omitempty"`
}

// RunReport is the finalized record of a single run. Created once all
// sinks have reported; not mutated afterwards.
type RunReport struct {
	ID            uuid.UUID        `json:"id"`
	TranscriptID  string           `json:"transcript_id"`
	Extraction    ExtractionResult `json:"extraction"`
	Outcomes      []SinkOutcome    `json:"outcomes"`
	OverallStatus RunStatus        `json:"overall_status"`
	CreatedAt     time.Time        `json:"created_at"`
}

// BuildRunReport aggregates per-sink outcomes into a finalized report.
// OverallStatus is succeeded only when every non-skipped outcome succeeded.
func BuildRunReport(transcriptID string, extraction ExtractionResult, outcomes []SinkOutcome) *RunReport {
	status := RunStatusSucceeded
	for _, o := range outcomes {
		if o.Status == SinkStatusSkipped {
			continue
		}
		if o.Status != SinkStatusSucceeded {
			status = RunStatusPartialFailure
			break
		}
	}

	if outcomes == nil {
		outcomes = make([]SinkOutcome, 0)
	}

	return &RunReport{
		ID:            uuid.New(),
		TranscriptID:  transcriptID,
		Extraction:    extraction,
		Outcomes:      outcomes,
		OverallStatus: status,
		CreatedAt:     time.Now().UTC(),
	}
}
