package run

import "time"

// ActionItemResponse is the API view of an extracted action item
type ActionItemResponse struct {
	Description string     `json:"description"`
	Owner       *string    `json:"owner,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// ExtractionResponse is the API view of a validated extraction
type ExtractionResponse struct {
	Summary           string               `json:"summary"`
	ActionItems       []ActionItemResponse `json:"action_items"`
	FollowUpRequested bool                 `json:"follow_up_requested"`
	UsedFallback      bool                 `json:"used_fallback"`
}

// SinkOutcomeResponse is the API view of one sink delivery outcome
type SinkOutcomeResponse struct {
	SinkName string `json:"sink_name"`
	Status   string `json:"status"`
	Detail   string `json:"detail,omitempty"`
}

// RunReportResponse is the API view of a finalized run
type RunReportResponse struct {
	ID            string                `json:"id"`
	TranscriptID  string                `json:"transcript_id"`
	Extraction    ExtractionResponse    `json:"extraction"`
	Outcomes      []SinkOutcomeResponse `json:"outcomes"`
	OverallStatus string                `json:"overall_status"`
	CreatedAt     time.Time             `json:"created_at"`
}
