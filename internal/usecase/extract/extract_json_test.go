package extract

import "testing"

func TestExtractJSONObject_Plain(t *testing.T) {
	got, ok := extractJSONObject(`{"a":1}`)
	if !ok {
		t.Fatal("expected an object")
	}
	if got != `{"a":1}` {
		t.Fatalf("unexpected extraction %q", got)
	}
}

func TestExtractJSONObject_ProseWrapper(t *testing.T) {
	got, ok := extractJSONObject(`Here is the JSON: {"summary":"Kickoff"} hope that helps!`)
	if !ok {
		t.Fatal("expected an object")
	}
	if got != `{"summary":"Kickoff"}` {
		t.Fatalf("unexpected extraction %q", got)
	}
}

func TestExtractJSONObject_CodeFence(t *testing.T) {
	raw := "```json\n{\"summary\":\"x\"}\n```"
	got, ok := extractJSONObject(raw)
	if !ok {
		t.Fatal("expected an object")
	}
	if got != `{"summary":"x"}` {
		t.Fatalf("unexpected extraction %q", got)
	}
}

func TestExtractJSONObject_Nested(t *testing.T) {
	raw := `text {"a":{"b":{"c":1}},"d":2} more text {"e":3}`
	got, ok := extractJSONObject(raw)
	if !ok {
		t.Fatal("expected an object")
	}
	if got != `{"a":{"b":{"c":1}},"d":2}` {
		t.Fatalf("unexpected extraction %q", got)
	}
}

func TestExtractJSONObject_BracesInsideStrings(t *testing.T) {
	raw := `{"summary":"use {curly} braces","note":"} tricky {"}`
	got, ok := extractJSONObject("prefix " + raw)
	if !ok {
		t.Fatal("expected an object")
	}
	if got != raw {
		t.Fatalf("unexpected extraction %q", got)
	}
}

func TestExtractJSONObject_EscapedQuotes(t *testing.T) {
	raw := `{"summary":"she said \"done {\" and left"}`
	got, ok := extractJSONObject(raw + " trailing")
	if !ok {
		t.Fatal("expected an object")
	}
	if got != raw {
		t.Fatalf("unexpected extraction %q", got)
	}
}

func TestExtractJSONObject_Unbalanced(t *testing.T) {
	if _, ok := extractJSONObject(`{"summary":"never closed`); ok {
		t.Fatal("expected no object for unbalanced input")
	}
}

func TestExtractJSONObject_NoObject(t *testing.T) {
	if _, ok := extractJSONObject("no braces here at all"); ok {
		t.Fatal("expected no object")
	}
	if _, ok := extractJSONObject(""); ok {
		t.Fatal("expected no object for empty input")
	}
}
