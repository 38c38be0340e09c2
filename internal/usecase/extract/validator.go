package extract

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/johnquangdev/fireflies-agent/internal/domain/entities"
)

// fallbackSummaryLimit bounds the summary taken from unparseable raw text
const fallbackSummaryLimit = 200

// dueDateLayouts are the date shapes models actually produce
var dueDateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// Validator turns raw model text into a well-formed ExtractionResult.
// It is total: any string, including empty or non-JSON input, yields a
// usable result. A parsing problem never fails the run.
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// Validate parses rawText into an ExtractionResult, applying the repair
// and fallback policy: strict parse first, then a bracket-depth recovery
// pass, then a degraded fallback result. RawModelOutput is always the
// untouched input.
func (v *Validator) Validate(rawText string) *entities.ExtractionResult {
	if fields, ok := parseObject(rawText); ok {
		return coerce(fields, rawText)
	}

	if candidate, found := extractJSONObject(rawText); found {
		if fields, ok := parseObject(candidate); ok {
			return coerce(fields, rawText)
		}
	}

	return fallback(rawText)
}

// parseObject attempts a strict parse of s as a JSON object
func parseObject(s string) (map[string]interface{}, bool) {
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &fields); err != nil {
		return nil, false
	}
	if fields == nil {
		// "null" unmarshals cleanly into a nil map but is not an object
		return nil, false
	}
	return fields, true
}

// coerce applies field-level repair to a parsed object
func coerce(fields map[string]interface{}, rawText string) *entities.ExtractionResult {
	result := &entities.ExtractionResult{
		ActionItems:    make([]entities.ActionItem, 0),
		RawModelOutput: rawText,
	}

	if summary, ok := fields["summary"].(string); ok {
		result.Summary = summary
	}

	if followUp, ok := fields["follow_up_requested"].(bool); ok {
		result.FollowUpRequested = followUp
	}

	items, ok := fields["action_items"].([]interface{})
	if !ok {
		return result
	}

	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		description, ok := item["description"].(string)
		if !ok || description == "" {
			// an item without a description carries no actionable meaning
			continue
		}

		actionItem := entities.ActionItem{Description: description}
		if owner, ok := item["owner"].(string); ok && owner != "" {
			actionItem.Owner = &owner
		}
		if due, ok := item["due_date"].(string); ok {
			actionItem.DueDate = parseDueDate(due)
		}

		result.ActionItems = append(result.ActionItems, actionItem)
	}

	return result
}

// fallback produces a degraded but well-formed result from raw text
func fallback(rawText string) *entities.ExtractionResult {
	summary := rawText
	if runes := []rune(summary); len(runes) > fallbackSummaryLimit {
		summary = string(runes[:fallbackSummaryLimit])
	}

	return &entities.ExtractionResult{
		Summary:        summary,
		ActionItems:    make([]entities.ActionItem, 0),
		UsedFallback:   true,
		RawModelOutput: rawText,
	}
}

// parseDueDate tries the known date layouts; unparseable dates stay unset
func parseDueDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
