package extract

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestValidate_StrictJSON(t *testing.T) {
	raw := `{"summary":"Weekly sync","action_items":[{"description":"Ship v2","owner":"Dana","due_date":"2025-07-01"}],"follow_up_requested":true}`

	result := NewValidator().Validate(raw)

	if result.UsedFallback {
		t.Fatal("strict parse must not use fallback")
	}
	if result.Summary != "Weekly sync" {
		t.Fatalf("unexpected summary %q", result.Summary)
	}
	if !result.FollowUpRequested {
		t.Fatal("expected follow-up requested")
	}
	if len(result.ActionItems) != 1 {
		t.Fatalf("expected 1 action item, got %d", len(result.ActionItems))
	}
	item := result.ActionItems[0]
	if item.Description != "Ship v2" {
		t.Fatalf("unexpected description %q", item.Description)
	}
	if item.Owner == nil || *item.Owner != "Dana" {
		t.Fatalf("unexpected owner %v", item.Owner)
	}
	want := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	if item.DueDate == nil || !item.DueDate.Equal(want) {
		t.Fatalf("unexpected due date %v", item.DueDate)
	}
	if result.RawModelOutput != raw {
		t.Fatal("raw model output must be preserved")
	}
}

func TestValidate_ProseWrappedJSON(t *testing.T) {
	raw := `Here is the JSON: {"summary":"Kickoff","action_items":[{"description":"Send deck","owner":"Alex"}],"follow_up_requested":true}`

	result := NewValidator().Validate(raw)

	if result.UsedFallback {
		t.Fatal("recovery pass must not be marked as fallback")
	}
	if result.Summary != "Kickoff" {
		t.Fatalf("unexpected summary %q", result.Summary)
	}
	if len(result.ActionItems) != 1 {
		t.Fatalf("expected 1 action item, got %d", len(result.ActionItems))
	}
	if result.ActionItems[0].Description != "Send deck" {
		t.Fatalf("unexpected description %q", result.ActionItems[0].Description)
	}
	if result.ActionItems[0].Owner == nil || *result.ActionItems[0].Owner != "Alex" {
		t.Fatalf("unexpected owner %v", result.ActionItems[0].Owner)
	}
	if !result.FollowUpRequested {
		t.Fatal("expected follow-up requested")
	}
	if result.RawModelOutput != raw {
		t.Fatal("raw model output must be preserved")
	}
}

func TestValidate_CodeFencedJSON(t *testing.T) {
	raw := "```json\n{\"summary\":\"Planning\",\"action_items\":[],\"follow_up_requested\":false}\n```"

	result := NewValidator().Validate(raw)

	if result.UsedFallback {
		t.Fatal("fenced JSON should be recovered, not degraded")
	}
	if result.Summary != "Planning" {
		t.Fatalf("unexpected summary %q", result.Summary)
	}
}

func TestValidate_FallbackOnFreeText(t *testing.T) {
	raw := "I couldn't understand the meeting."

	result := NewValidator().Validate(raw)

	if !result.UsedFallback {
		t.Fatal("expected fallback")
	}
	if result.Summary != raw {
		t.Fatalf("fallback summary should carry raw text, got %q", result.Summary)
	}
	if result.ActionItems == nil || len(result.ActionItems) != 0 {
		t.Fatalf("fallback action items must be empty, got %v", result.ActionItems)
	}
	if result.FollowUpRequested {
		t.Fatal("fallback must not request follow-up")
	}
	if result.RawModelOutput != raw {
		t.Fatal("raw model output must be preserved")
	}
}

func TestValidate_FallbackTruncatesSummary(t *testing.T) {
	raw := strings.Repeat("é", 500)

	result := NewValidator().Validate(raw)

	if !result.UsedFallback {
		t.Fatal("expected fallback")
	}
	if got := len([]rune(result.Summary)); got != 200 {
		t.Fatalf("expected 200-rune summary, got %d", got)
	}
	if result.RawModelOutput != raw {
		t.Fatal("raw model output must be preserved untruncated")
	}
}

func TestValidate_NullLiteralFallsBack(t *testing.T) {
	result := NewValidator().Validate("null")

	if !result.UsedFallback {
		t.Fatal("a bare null is not an object and must fall back")
	}
	if result.Summary != "null" {
		t.Fatalf("fallback summary should carry raw text, got %q", result.Summary)
	}
	if result.ActionItems == nil || len(result.ActionItems) != 0 {
		t.Fatalf("fallback action items must be empty, got %v", result.ActionItems)
	}
	if result.FollowUpRequested {
		t.Fatal("fallback must not request follow-up")
	}
}

func TestValidate_EmptyString(t *testing.T) {
	result := NewValidator().Validate("")

	if !result.UsedFallback {
		t.Fatal("expected fallback for empty input")
	}
	if result.Summary != "" {
		t.Fatalf("unexpected summary %q", result.Summary)
	}
	if result.ActionItems == nil {
		t.Fatal("action items must never be nil")
	}
}

func TestValidate_FieldCoercion(t *testing.T) {
	// missing summary, item without description, non-boolean follow-up
	raw := `{"action_items":[{"owner":"Sam"},{"description":"File the report"}],"follow_up_requested":"yes"}`

	result := NewValidator().Validate(raw)

	if result.UsedFallback {
		t.Fatal("well-formed JSON must not fall back")
	}
	if result.Summary != "" {
		t.Fatalf("missing summary must coerce to empty, got %q", result.Summary)
	}
	if len(result.ActionItems) != 1 {
		t.Fatalf("description-less item must be dropped, got %d items", len(result.ActionItems))
	}
	if result.ActionItems[0].Description != "File the report" {
		t.Fatalf("unexpected description %q", result.ActionItems[0].Description)
	}
	if result.ActionItems[0].Owner != nil {
		t.Fatal("absent owner must stay unset")
	}
	if result.FollowUpRequested {
		t.Fatal("non-boolean follow_up_requested must coerce to false")
	}
}

func TestValidate_NonListActionItems(t *testing.T) {
	raw := `{"summary":"ok","action_items":"none","follow_up_requested":false}`

	result := NewValidator().Validate(raw)

	if result.UsedFallback {
		t.Fatal("should not fall back")
	}
	if result.ActionItems == nil || len(result.ActionItems) != 0 {
		t.Fatalf("non-list action_items must coerce to empty sequence, got %v", result.ActionItems)
	}
}

func TestValidate_UnparseableDueDateLeftUnset(t *testing.T) {
	raw := `{"summary":"ok","action_items":[{"description":"Do it","due_date":"next Friday"}],"follow_up_requested":false}`

	result := NewValidator().Validate(raw)

	if len(result.ActionItems) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.ActionItems))
	}
	if result.ActionItems[0].DueDate != nil {
		t.Fatal("unparseable due date must stay unset")
	}
}

func TestValidate_Idempotent(t *testing.T) {
	inputs := []string{
		`{"summary":"s","action_items":[{"description":"d"}],"follow_up_requested":true}`,
		`prose {"summary":"s"} prose`,
		"not json at all",
		"",
	}

	v := NewValidator()
	for _, raw := range inputs {
		first := v.Validate(raw)
		second := v.Validate(raw)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("validate not idempotent for %q", raw)
		}
	}
}
