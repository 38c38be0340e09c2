package gcalendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/johnquangdev/fireflies-agent/internal/domain/entities"
	"github.com/johnquangdev/fireflies-agent/pkg/config"
)

const (
	followUpLeadTime = 7 * 24 * time.Hour
	followUpDuration = 30 * time.Minute
)

// Sink creates a follow-up event in Google Calendar. It only fires for
// results that asked for a follow-up meeting.
type Sink struct {
	calendarID string
	baseURL    string
	client     *http.Client
	now        func() time.Time
}

// NewSink creates a Google Calendar scheduler sink
func NewSink(cfg *config.CalendarConfig) *Sink {
	base := "https://www.googleapis.com/calendar/v3"
	if cfg.BaseURL != "" {
		base = cfg.BaseURL
	}

	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
	client := oauth2.NewClient(context.Background(), source)
	client.Timeout = 30 * time.Second

	return &Sink{
		calendarID: calendarID,
		baseURL:    base,
		client:     client,
		now:        time.Now,
	}
}

// Name identifies the sink in run reports
func (s *Sink) Name() string {
	return "calendar"
}

// Accepts fires only when the result requested a follow-up meeting;
// otherwise the dispatcher records the outcome as skipped without calling Send.
func (s *Sink) Accepts(result *entities.ExtractionResult) bool {
	return result.FollowUpRequested
}

type eventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type eventRequest struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       eventTime `json:"start"`
	End         eventTime `json:"end"`
}

// Send creates the follow-up event one week out
func (s *Sink) Send(ctx context.Context, result *entities.ExtractionResult) error {
	start := s.now().UTC().Add(followUpLeadTime)
	end := start.Add(followUpDuration)

	event := eventRequest{
		Summary:     "Meeting follow-up",
		Description: result.Summary,
		Start:       eventTime{DateTime: start.Format(time.RFC3339), TimeZone: "UTC"},
		End:         eventTime{DateTime: end.Format(time.RFC3339), TimeZone: "UTC"},
	}

	b, err := json.Marshal(event)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events", s.baseURL, url.PathEscape(s.calendarID))
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
		return fmt.Errorf("calendar returned status %d", resp.StatusCode)
	}

	return nil
}
