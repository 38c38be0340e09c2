package extract

import (
	"context"

	"github.com/johnquangdev/fireflies-agent/internal/domain/entities"
)

// TranscriptProvider supplies meeting transcripts by meeting id
type TranscriptProvider interface {
	Fetch(ctx context.Context, meetingID string) (*entities.Transcript, error)
}

// LanguageModelProvider completes a prompt and returns the raw model text.
// Implementations never parse or repair the response.
type LanguageModelProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
