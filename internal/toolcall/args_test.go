package toolcall

import (
	"encoding/json"
	"testing"
)

func TestParseArgs_CompletePayload(t *testing.T) {
	view := ParseArgs(json.RawMessage(`{"ticker":"AAPL","limit":5}`))
	if !view.Complete {
		t.Fatalf("expected strict parse, got %#v", view)
	}
	if got, ok := view.Get("ticker"); !ok || got != "AAPL" {
		t.Fatalf("ticker = %q ok=%v", got, ok)
	}
	if got, ok := view.Get("limit"); !ok || got != "5" {
		t.Fatalf("limit = %q ok=%v", got, ok)
	}
}

func TestParseArgs_TruncatedPayloadIsRepaired(t *testing.T) {
	// A partially transmitted streaming fragment.
	view := ParseArgs(json.RawMessage(`{"ticker": "AAP`))
	if view.Complete {
		t.Fatalf("truncated payload must not report complete")
	}
	if view.Empty() {
		t.Fatalf("truncated payload must still render something: %#v", view)
	}
	if got, ok := view.Get("ticker"); ok && got == "" {
		t.Fatalf("repaired field should carry the partial value, got %q", got)
	}
}

func TestParseArgs_GarbageFallsBackToRaw(t *testing.T) {
	view := ParseArgs(json.RawMessage("not json at all ((("))
	if view.Empty() {
		t.Fatalf("raw fallback must be non-empty")
	}
	if view.Raw == "" {
		t.Fatalf("raw text lost: %#v", view)
	}
}

func TestParseArgs_EmptyPayloadIsLegitimate(t *testing.T) {
	view := ParseArgs(nil)
	if !view.Complete || !view.Empty() {
		t.Fatalf("empty args should be complete and empty, got %#v", view)
	}
}

func TestParseArgs_NestedValuesAreEncoded(t *testing.T) {
	view := ParseArgs(json.RawMessage(`{"filters":{"since":"7d","include":["*.json"]}}`))
	got, ok := view.Get("filters")
	if !ok {
		t.Fatalf("missing filters field: %#v", view)
	}
	var nested map[string]any
	if err := json.Unmarshal([]byte(got), &nested); err != nil {
		t.Fatalf("nested value should round-trip as JSON: %q (%v)", got, err)
	}
}
