package toolcall

import "encoding/json"

// Status is the lifecycle stage of one tool invocation.
type Status string

const (
	StatusPending       Status = "pending"
	StatusArgsStreaming Status = "args_streaming"
	StatusExecuting     Status = "executing"
	StatusComplete      Status = "complete"
	StatusFailed        Status = "failed"
)

// Rank orders statuses along the lifecycle. Unknown statuses rank below
// pending so they can never displace a tracked snapshot.
func (s Status) Rank() int {
	switch s {
	case StatusPending:
		return 1
	case StatusArgsStreaming:
		return 2
	case StatusExecuting:
		return 3
	case StatusComplete, StatusFailed:
		return 4
	default:
		return 0
	}
}

// Terminal reports whether no further updates are expected for this status.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusFailed
}

func (s Status) Valid() bool {
	return s.Rank() > 0
}

// Invocation is one snapshot of a tool call as reported by the agent
// runtime. The tool namespace is open-ended; Args and Result shapes are
// owned by whatever tool the agent decided to use.
type Invocation struct {
	CallID string
	Tool   string
	Status Status
	// Args may be a syntactically incomplete JSON fragment while the
	// status is args_streaming.
	Args json.RawMessage
	// Result is set only for complete invocations.
	Result json.RawMessage
	// Error carries the failure reason for failed invocations.
	Error string
}
