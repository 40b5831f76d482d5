package events

import (
	"time"

	"reportchat/internal/toolcall"
)

// EventType names the envelope kinds the runtime publishes to the UI.
type EventType string

const (
	EventTaskStarted   EventType = "task.started"
	EventTaskCompleted EventType = "task.completed"
	EventTaskError     EventType = "task.error"
	// EventAgentOutput carries streamed assistant text.
	EventAgentOutput EventType = "agent.output"
	// EventToolCall carries a toolcall.Invocation snapshot. The host applies
	// it through its tracker and re-dispatches the render.
	EventToolCall EventType = "tool.call"
)

// AgentOutput is streamed assistant text. Final marks the end of a turn's
// text channel.
type AgentOutput struct {
	Content string
	Final   bool
}

// TaskResult describes how a turn ended.
type TaskResult struct {
	Status string // completed|failed|interrupted
	Error  string
}

// Event is the only message format on the bus. Payload shape depends on
// Type: EventToolCall → toolcall.Invocation, EventAgentOutput →
// AgentOutput, EventTaskCompleted/EventTaskError → TaskResult.
type Event struct {
	Type      EventType
	SessionID string
	Timestamp time.Time
	Payload   any
}

// ToolCallEvent builds the envelope for one invocation snapshot.
func ToolCallEvent(sessionID string, inv toolcall.Invocation) Event {
	return Event{
		Type:      EventToolCall,
		SessionID: sessionID,
		Timestamp: time.Now(),
		Payload:   inv,
	}
}
