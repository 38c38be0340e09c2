package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/johnquangdev/fireflies-agent/internal/domain/entities"
	"github.com/johnquangdev/fireflies-agent/pkg/config"
)

// Sink persists action items as records in an Airtable table
type Sink struct {
	apiKey  string
	baseID  string
	table   string
	baseURL string
	client  *http.Client
}

// NewSink creates an Airtable task sink
func NewSink(cfg *config.AirtableConfig) *Sink {
	base := "https://api.airtable.com"
	if cfg.BaseURL != "" {
		base = cfg.BaseURL
	}

	return &Sink{
		apiKey:  cfg.APIKey,
		baseID:  cfg.BaseID,
		table:   cfg.Table,
		baseURL: base,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Name identifies the sink in run reports
func (s *Sink) Name() string {
	return "airtable"
}

// Accepts always delivers; a result without action items is a no-op success
func (s *Sink) Accepts(result *entities.ExtractionResult) bool {
	return true
}

type recordRequest struct {
	Fields map[string]interface{} `json:"fields"`
}

// Send creates one record per action item, in order. Stops at the first
// failing record so the outcome detail names the item that failed.
func (s *Sink) Send(ctx context.Context, result *entities.ExtractionResult) error {
	endpoint := fmt.Sprintf("%s/v0/%s/%s", s.baseURL, s.baseID, s.table)

	for i, item := range result.ActionItems {
		fields := map[string]interface{}{
			"Name":  item.Description,
			"Notes": result.Summary,
		}
		if item.Owner != nil {
			fields["Owner"] = *item.Owner
		}
		if item.DueDate != nil {
			fields["Due Date"] = item.DueDate.Format("2006-01-02")
		}

		if err := s.createRecord(ctx, endpoint, recordRequest{Fields: fields}); err != nil {
			return fmt.Errorf("record %d of %d: %w", i+1, len(result.ActionItems), err)
		}
	}

	return nil
}

func (s *Sink) createRecord(ctx context.Context, endpoint string, record recordRequest) error {
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("airtable returned status %d", resp.StatusCode)
	}

	return nil
}
