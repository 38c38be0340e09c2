package gmail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/johnquangdev/fireflies-agent/internal/domain/entities"
	"github.com/johnquangdev/fireflies-agent/pkg/config"
)

// Sink delivers a human-readable run summary by email through the Gmail
// REST API. Auth is a bearer token supplied through an oauth2 TokenSource.
type Sink struct {
	from    string
	to      string
	baseURL string
	client  *http.Client
}

// NewSink creates a Gmail notification sink
func NewSink(cfg *config.GmailConfig) *Sink {
	base := "https://gmail.googleapis.com"
	if cfg.BaseURL != "" {
		base = cfg.BaseURL
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
	client := oauth2.NewClient(context.Background(), source)
	client.Timeout = 30 * time.Second

	return &Sink{
		from:    cfg.From,
		to:      cfg.NotifyTo,
		baseURL: base,
		client:  client,
	}
}

// Name identifies the sink in run reports
func (s *Sink) Name() string {
	return "gmail"
}

// Accepts always delivers notifications
func (s *Sink) Accepts(result *entities.ExtractionResult) bool {
	return true
}

type sendRequest struct {
	Raw string `json:"raw"`
}

// Send builds an RFC 822 message from the result and posts it
func (s *Sink) Send(ctx context.Context, result *entities.ExtractionResult) error {
	if s.to == "" {
		return fmt.Errorf("gmail sink has no recipient configured")
	}

	message := buildMessage(s.from, s.to, result)
	raw := base64.URLEncoding.EncodeToString([]byte(message))

	b, err := json.Marshal(sendRequest{Raw: raw})
	if err != nil {
		return err
	}

	endpoint := s.baseURL + "/gmail/v1/users/me/messages/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("gmail returned status %d", resp.StatusCode)
	}

	return nil
}

// buildMessage renders the notification email body
func buildMessage(from, to string, result *entities.ExtractionResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Meeting follow-up\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")

	b.WriteString("Summary:\r\n")
	b.WriteString(result.Summary)
	b.WriteString("\r\n\r\n")

	if len(result.ActionItems) > 0 {
		b.WriteString("Action items:\r\n")
		for _, item := range result.ActionItems {
			line := "- " + item.Description
			if item.Owner != nil {
				line += fmt.Sprintf(" (owner: %s)", *item.Owner)
			}
			if item.DueDate != nil {
				line += fmt.Sprintf(" (due: %s)", item.DueDate.Format("2006-01-02"))
			}
			b.WriteString(line + "\r\n")
		}
		b.WriteString("\r\n")
	}

	if result.FollowUpRequested {
		b.WriteString("A follow-up meeting was requested.\r\n")
	}

	return b.String()
}
