// Package mock provides deterministic stand-ins for every external
// collaborator. They are selected explicitly through configuration at
// construction time; nothing in the pipeline checks a global flag.
package mock

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/fireflies-agent/internal/domain/entities"
)

// TranscriptProvider returns a canned kickoff-meeting transcript for any id
type TranscriptProvider struct{}

// NewTranscriptProvider creates a mock transcript source
func NewTranscriptProvider() *TranscriptProvider {
	return &TranscriptProvider{}
}

// Fetch returns the canned transcript with the requested id
func (p *TranscriptProvider) Fetch(ctx context.Context, meetingID string) (*entities.Transcript, error) {
	sentences := []entities.Sentence{
		{SpeakerName: "Alice", Text: "We need to deliver the prototype by next Friday."},
		{SpeakerName: "Bob", Text: "I'll take the data pipeline action."},
		{SpeakerName: "Me", Text: "I'll prepare the summary and arrange a follow-up call."},
	}

	lines := ""
	for i, s := range sentences {
		if i > 0 {
			lines += "\n"
		}
		lines += s.SpeakerName + ": " + s.Text
	}

	return &entities.Transcript{
		ID:           meetingID,
		MeetingTitle: "Project Phoenix kickoff",
		Participants: []string{"alice@example.com", "bob@example.com", "me@example.com"},
		Text:         lines,
		Sentences:    sentences,
		Timestamp:    time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
	}, nil
}

// ModelProvider echoes a canned structured response regardless of prompt
type ModelProvider struct{}

// NewModelProvider creates a mock language model
func NewModelProvider() *ModelProvider {
	return &ModelProvider{}
}

// Complete returns a fixed well-formed JSON analysis
func (p *ModelProvider) Complete(ctx context.Context, prompt string) (string, error) {
	return `{
  "summary": "Prototype due next Friday. Bob owns the data pipeline. Follow-up call needed.",
  "action_items": [
    {"description": "Deliver the prototype", "owner": "Alice", "due_date": "2025-06-13"},
    {"description": "Build data pipeline", "owner": "Bob"},
    {"description": "Prepare meeting summary", "owner": "Me"}
  ],
  "follow_up_requested": true
}`, nil
}

// Sink records deliveries instead of calling anything
type Sink struct {
	name   string
	logger *zap.Logger

	mu   sync.Mutex
	sent []*entities.ExtractionResult
}

// NewSink creates a recording sink with the given name
func NewSink(name string, logger *zap.Logger) *Sink {
	return &Sink{name: name, logger: logger}
}

// Name identifies the sink in run reports
func (s *Sink) Name() string {
	return s.name
}

// Accepts mirrors the real sinks: the calendar variant only fires on
// follow-up requests
func (s *Sink) Accepts(result *entities.ExtractionResult) bool {
	if s.name == "calendar" {
		return result.FollowUpRequested
	}
	return true
}

// Send records the result and succeeds
func (s *Sink) Send(ctx context.Context, result *entities.ExtractionResult) error {
	s.mu.Lock()
	s.sent = append(s.sent, result)
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("[MOCK] sink delivery",
			zap.String("sink", s.name),
			zap.Int("action_items", len(result.ActionItems)),
		)
	}
	return nil
}

// Sent returns the results delivered so far
func (s *Sink) Sent() []*entities.ExtractionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entities.ExtractionResult, len(s.sent))
	copy(out, s.sent)
	return out
}
