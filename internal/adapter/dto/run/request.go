package run

// TriggerRunRequest starts a pipeline run for a meeting
type TriggerRunRequest struct {
	MeetingID string `json:"meeting_id" validate:"required"`
}
