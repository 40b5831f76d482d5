package agent

// StreamEventType enumerates what a provider stream can deliver.
type StreamEventType int

const (
	// StreamEventTextDelta carries a chunk of assistant text.
	StreamEventTextDelta StreamEventType = iota
	// StreamEventToolDelta carries an incremental piece of one tool call:
	// the first delta announces the name, later ones append argument text.
	StreamEventToolDelta
	// StreamEventToolReady marks a tool call's arguments as final.
	StreamEventToolReady
	// StreamEventCompleted marks the end of the stream.
	StreamEventCompleted
)

// ToolDelta is one incremental piece of a streamed tool call. Index
// correlates deltas when the provider omits the call id on continuation
// chunks.
type ToolDelta struct {
	Index    int
	CallID   string
	Name     string
	ArgsText string
}

type StreamEvent struct {
	Type StreamEventType
	Text string
	Tool ToolDelta
}
