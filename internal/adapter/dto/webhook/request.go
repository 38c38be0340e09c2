package webhook

// FirefliesEvent is the webhook payload Fireflies sends when a meeting
// transcript becomes available
type FirefliesEvent struct {
	MeetingID string `json:"meetingId" validate:"required"`
	EventType string `json:"eventType"`
}
