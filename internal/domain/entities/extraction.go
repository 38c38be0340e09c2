package entities

import "time"

// ActionItem is a single follow-up task extracted from a transcript.
// Owner and DueDate stay nil when the model did not name them; they are
// never defaulted to placeholder values.
type ActionItem struct {
	Description string     `json:"description"`
	Owner       *string    `json:"owner,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// ExtractionResult is the validated structured output of a model analysis.
// ActionItems is never nil: absence is an empty slice.
type ExtractionResult struct {
	Summary           string       `json:"summary"`
	ActionItems       []ActionItem `json:"action_items"`
	FollowUpRequested bool         `json:"follow_up_requested"`
	UsedFallback      bool         `json:"used_fallback"`
	RawModelOutput    string       `json:"raw_model_output"`
}
