package tui

import (
	"encoding/json"
	"strings"
	"testing"

	"reportchat/internal/events"
	"reportchat/internal/toolcall"
)

func TestApplyEvent_ToolLifecycleKeyedByCallID(t *testing.T) {
	m := New(Options{})

	for _, inv := range []toolcall.Invocation{
		{CallID: "c1", Tool: "lookupStockPrice", Status: toolcall.StatusPending},
		{CallID: "c1", Tool: "lookupStockPrice", Status: toolcall.StatusArgsStreaming, Args: json.RawMessage(`{"ticker": "AAP`)},
		{CallID: "c1", Tool: "lookupStockPrice", Status: toolcall.StatusComplete, Args: json.RawMessage(`{"ticker":"AAPL"}`), Result: json.RawMessage(`{"price":190.12}`)},
		// Stale event after the terminal stage.
		{CallID: "c1", Tool: "lookupStockPrice", Status: toolcall.StatusPending},
	} {
		m.applyEvent(events.ToolCallEvent(m.sessionID, inv))
	}

	got := m.transcript.view(m.renderContext())
	if !strings.Contains(got, "completed") {
		t.Fatalf("display should end at completed:\n%s", got)
	}
	if strings.Contains(got, "queued") {
		t.Fatalf("stale pending leaked into display:\n%s", got)
	}
	if len(m.transcript.cells) != 1 {
		t.Fatalf("one call id should mount one cell, got %d", len(m.transcript.cells))
	}
}

func TestApplyEvent_StreamedTextAccumulates(t *testing.T) {
	m := New(Options{})

	for _, chunk := range []string{"Looking ", "into ", "it."} {
		m.applyEvent(events.Event{
			Type:      events.EventAgentOutput,
			SessionID: m.sessionID,
			Payload:   events.AgentOutput{Content: chunk},
		})
	}
	m.applyEvent(events.Event{
		Type:      events.EventAgentOutput,
		SessionID: m.sessionID,
		Payload:   events.AgentOutput{Final: true},
	})

	got := m.transcript.view(m.renderContext())
	if !strings.Contains(got, "Looking into it.") {
		t.Fatalf("streamed text not accumulated:\n%s", got)
	}
	if len(m.history) != 1 || m.history[0].Content != "Looking into it." {
		t.Fatalf("final text not persisted to history: %#v", m.history)
	}
}

func TestApplyEvent_IgnoresOtherSessions(t *testing.T) {
	m := New(Options{})
	m.applyEvent(events.ToolCallEvent("other-session", toolcall.Invocation{CallID: "c1", Tool: "x", Status: toolcall.StatusPending}))
	if len(m.transcript.cells) != 0 {
		t.Fatalf("foreign session event should be dropped")
	}
}

func TestApplyEvent_ToolActivitySplitsTextBlocks(t *testing.T) {
	m := New(Options{})

	m.applyEvent(events.Event{Type: events.EventAgentOutput, SessionID: m.sessionID, Payload: events.AgentOutput{Content: "before"}})
	m.applyEvent(events.ToolCallEvent(m.sessionID, toolcall.Invocation{CallID: "c1", Tool: "web_search", Status: toolcall.StatusPending}))
	m.applyEvent(events.Event{Type: events.EventAgentOutput, SessionID: m.sessionID, Payload: events.AgentOutput{Content: "after"}})

	if len(m.transcript.cells) != 3 {
		t.Fatalf("expected text/tool/text cells, got %d", len(m.transcript.cells))
	}
}
