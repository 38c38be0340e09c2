package fireflies

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/johnquangdev/fireflies-agent/errors"
	"github.com/johnquangdev/fireflies-agent/internal/domain/entities"
	"github.com/johnquangdev/fireflies-agent/pkg/config"
)

// transcriptQuery is the GraphQL query for a single transcript
const transcriptQuery = `
query Transcript($transcriptId: String!) {
  transcript(id: $transcriptId) {
    title
    participants
    date
    sentences { speaker_name text }
  }
}`

// Client fetches meeting transcripts from the Fireflies GraphQL API
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a Fireflies client using values from the provided config
func NewClient(cfg *config.FirefliesConfig) *Client {
	base := "https://api.fireflies.ai"
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
		if cfg.BaseURL != "" {
			base = cfg.BaseURL
		}
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: base,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type transcriptPayload struct {
	Title        string   `json:"title"`
	Participants []string `json:"participants"`
	Date         int64    `json:"date"` // epoch millis
	Sentences    []struct {
		SpeakerName string `json:"speaker_name"`
		Text        string `json:"text"`
	} `json:"sentences"`
}

type graphqlResponse struct {
	Data struct {
		Transcript *transcriptPayload `json:"transcript"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Fetch retrieves a transcript by meeting id and normalizes it into the
// domain Transcript. The transcript text is the sentences joined as
// "Speaker: text" lines.
func (c *Client) Fetch(ctx context.Context, meetingID string) (*entities.Transcript, error) {
	body := graphqlRequest{
		Query:     transcriptQuery,
		Variables: map[string]interface{}{"transcriptId": meetingID},
	}

	b, err := json.Marshal(body)
	if err != nil {
		return nil, errors.ErrProviderFailed("fireflies", err)
	}

	endpoint := c.baseURL + "/graphql"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, errors.ErrProviderFailed("fireflies", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.ErrProviderFailed("fireflies", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, errors.ErrProviderFailed("fireflies", fmt.Errorf("fireflies returned status %d", resp.StatusCode))
	}

	var gr graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, errors.ErrProviderFailed("fireflies", err)
	}
	if len(gr.Errors) > 0 {
		return nil, errors.ErrProviderFailed("fireflies", fmt.Errorf("graphql error: %s", gr.Errors[0].Message))
	}
	if gr.Data.Transcript == nil {
		return nil, errors.ErrTranscriptNotFound(meetingID)
	}

	return normalize(meetingID, gr.Data.Transcript), nil
}

// normalize flattens the API payload into the domain shape
func normalize(meetingID string, p *transcriptPayload) *entities.Transcript {
	sentences := make([]entities.Sentence, 0, len(p.Sentences))
	lines := make([]string, 0, len(p.Sentences))
	for _, s := range p.Sentences {
		sentences = append(sentences, entities.Sentence{SpeakerName: s.SpeakerName, Text: s.Text})
		lines = append(lines, fmt.Sprintf("%s: %s", s.SpeakerName, s.Text))
	}

	timestamp := time.Time{}
	if p.Date > 0 {
		timestamp = time.UnixMilli(p.Date).UTC()
	}

	return &entities.Transcript{
		ID:           meetingID,
		MeetingTitle: p.Title,
		Participants: p.Participants,
		Text:         strings.Join(lines, "\n"),
		Sentences:    sentences,
		Timestamp:    timestamp,
	}
}
