package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RunRecord is the stored shape of a finalized RunReport
type RunRecord struct {
	ID            uuid.UUID                                  `json:"id" gorm:"type:uuid;primary_key"`
	TranscriptID  string                                     `json:"transcript_id" gorm:"type:varchar(255);not null;index"`
	Extraction    []byte                                     `json:"extraction" gorm:"type:jsonb"`
	Outcomes      []byte                                     `json:"outcomes" gorm:"type:jsonb"`
	OverallStatus string                                     `json:"overall_status" gorm:"type:varchar(32);not null"`
	UsedFallback  bool                                       `json:"used_fallback" gorm:"default:false"`
	Metadata      datatypes.JSONType[map[string]interface{}] `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt     time.Time                                  `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for RunRecord
func (RunRecord) TableName() string {
	return "run_reports"
}

// NewRunRecord flattens a RunReport for persistence
func NewRunRecord(report *RunReport) (*RunRecord, error) {
	extraction, err := json.Marshal(report.Extraction)
	if err != nil {
		return nil, fmt.Errorf("marshal extraction: %w", err)
	}
	outcomes, err := json.Marshal(report.Outcomes)
	if err != nil {
		return nil, fmt.Errorf("marshal outcomes: %w", err)
	}

	return &RunRecord{
		ID:            report.ID,
		TranscriptID:  report.TranscriptID,
		Extraction:    extraction,
		Outcomes:      outcomes,
		OverallStatus: string(report.OverallStatus),
		UsedFallback:  report.Extraction.UsedFallback,
		CreatedAt:     report.CreatedAt,
	}, nil
}

// ToReport rebuilds the RunReport view of a stored record
func (r *RunRecord) ToReport() (*RunReport, error) {
	var extraction ExtractionResult
	if len(r.Extraction) > 0 {
		if err := json.Unmarshal(r.Extraction, &extraction); err != nil {
			return nil, fmt.Errorf("unmarshal extraction: %w", err)
		}
	}
	outcomes := make([]SinkOutcome, 0)
	if len(r.Outcomes) > 0 {
		if err := json.Unmarshal(r.Outcomes, &outcomes); err != nil {
			return nil, fmt.Errorf("unmarshal outcomes: %w", err)
		}
	}

	return &RunReport{
		ID:            r.ID,
		TranscriptID:  r.TranscriptID,
		Extraction:    extraction,
		Outcomes:      outcomes,
		OverallStatus: RunStatus(r.OverallStatus),
		CreatedAt:     r.CreatedAt,
	}, nil
}
