package airtable

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/johnquangdev/fireflies-agent/internal/domain/entities"
	"github.com/johnquangdev/fireflies-agent/pkg/config"
)

func newTestSink(serverURL string) *Sink {
	return NewSink(&config.AirtableConfig{
		APIKey:  "test-key",
		BaseID:  "appBase",
		Table:   "Tasks",
		BaseURL: serverURL,
	})
}

func TestSend_OneRecordPerActionItem(t *testing.T) {
	var payloads []recordRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v0/appBase/Tasks" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		var record recordRequest
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			t.Errorf("failed to decode record: %v", err)
		}
		payloads = append(payloads, record)
		w.Write([]byte(`{"id":"rec123"}`))
	}))
	defer server.Close()

	owner := "Dana"
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	result := &entities.ExtractionResult{
		Summary: "Planning recap",
		ActionItems: []entities.ActionItem{
			{Description: "Draft budget", Owner: &owner, DueDate: &due},
			{Description: "Book venue"},
		},
	}

	if err := newTestSink(server.URL).Send(context.Background(), result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(payloads) != 2 {
		t.Fatalf("expected 2 records, got %d", len(payloads))
	}
	first := payloads[0].Fields
	if first["Name"] != "Draft budget" || first["Notes"] != "Planning recap" {
		t.Fatalf("unexpected first record %v", first)
	}
	if first["Owner"] != "Dana" || first["Due Date"] != "2025-07-01" {
		t.Fatalf("unexpected optional fields %v", first)
	}
	second := payloads[1].Fields
	if _, ok := second["Owner"]; ok {
		t.Fatal("ownerless item must not send an Owner field")
	}
	if _, ok := second["Due Date"]; ok {
		t.Fatal("undated item must not send a Due Date field")
	}
}

func TestSend_NoActionItemsIsNoOp(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	result := &entities.ExtractionResult{
		Summary:     "Nothing actionable",
		ActionItems: []entities.ActionItem{},
	}

	if err := newTestSink(server.URL).Send(context.Background(), result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests != 0 {
		t.Fatalf("expected no requests, got %d", requests)
	}
}

func TestSend_StopsAtFirstFailure(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 2 {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		w.Write([]byte(`{"id":"rec123"}`))
	}))
	defer server.Close()

	result := &entities.ExtractionResult{
		ActionItems: []entities.ActionItem{
			{Description: "one"},
			{Description: "two"},
			{Description: "three"},
		},
	}

	err := newTestSink(server.URL).Send(context.Background(), result)
	if err == nil {
		t.Fatal("expected error")
	}
	if requests != 2 {
		t.Fatalf("must stop at first failing record, got %d requests", requests)
	}
	if !strings.Contains(err.Error(), "record 2 of 3") {
		t.Fatalf("error must name the failing record, got %q", err.Error())
	}
}
