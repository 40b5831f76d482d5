package runtime

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"reportchat/internal/agent"
	"reportchat/internal/events"
	"reportchat/internal/logger"
	"reportchat/internal/toolcall"
)

// Engine drives one conversation against the external agent and translates
// the provider stream into tool-invocation snapshots on the bus. It owns
// the mapping from provider deltas to the pending → args_streaming →
// executing → complete/failed lifecycle; the UI only ever sees snapshots.
type Engine struct {
	client agent.ModelClient
	bus    *events.Bus
	system string
	model  string
	log    *logger.LogEntry
}

type Options struct {
	Client agent.ModelClient
	Bus    *events.Bus
	System string
	Model  string
}

func New(opts Options) *Engine {
	return &Engine{
		client: opts.Client,
		bus:    opts.Bus,
		system: opts.System,
		model:  opts.Model,
		log:    logger.Named("runtime"),
	}
}

// trackedCall is the engine-side accumulation of one streamed tool call.
type trackedCall struct {
	id       string
	tool     string
	args     strings.Builder
	status   toolcall.Status
	resolved bool
}

// RunTurn streams one turn. It blocks until the provider stream ends and
// publishes events as they happen; cancel the context to interrupt.
func (e *Engine) RunTurn(ctx context.Context, sessionID string, history []agent.Message) error {
	if e.client == nil {
		return fmt.Errorf("runtime engine has no model client")
	}
	e.publish(events.Event{Type: events.EventTaskStarted, SessionID: sessionID, Timestamp: time.Now()})

	prompt := agent.Prompt{
		Model:    e.model,
		System:   e.system,
		Messages: history,
		Tools:    agent.DefaultTools(),
	}

	calls := map[int]*trackedCall{}
	byID := map[string]*trackedCall{}
	scanner := &resultScanner{}

	emitText := func(text string, final bool) {
		if text == "" && !final {
			return
		}
		e.publish(events.Event{
			Type:      events.EventAgentOutput,
			SessionID: sessionID,
			Timestamp: time.Now(),
			Payload:   events.AgentOutput{Content: text, Final: final},
		})
	}

	applyMarker := func(marker ResultMarker) {
		call := byID[marker.CallID]
		if call == nil {
			// Result for a call the stream never announced; synthesize one
			// so the transcript still shows the outcome.
			call = &trackedCall{id: marker.CallID, tool: marker.Tool}
			if call.id == "" {
				call.id = uuid.NewString()
			}
			byID[call.id] = call
		}
		if call.tool == "" {
			call.tool = marker.Tool
		}
		call.resolved = true
		if marker.OK {
			call.status = toolcall.StatusComplete
			e.publishCall(sessionID, call, marker.Result, "")
			return
		}
		call.status = toolcall.StatusFailed
		e.publishCall(sessionID, call, nil, marker.Error)
	}

	onEvent := func(ev agent.StreamEvent) {
		switch ev.Type {
		case agent.StreamEventTextDelta:
			markers, clean := scanner.Write(ev.Text)
			emitText(clean, false)
			for _, marker := range markers {
				applyMarker(marker)
			}
		case agent.StreamEventToolDelta:
			call := calls[ev.Tool.Index]
			if call == nil {
				call = &trackedCall{id: ev.Tool.CallID, status: toolcall.StatusPending}
				if call.id == "" {
					call.id = uuid.NewString()
				}
				calls[ev.Tool.Index] = call
				byID[call.id] = call
			}
			if ev.Tool.Name != "" {
				call.tool = ev.Tool.Name
			}
			if call.status == toolcall.StatusPending && call.tool != "" {
				e.publishCall(sessionID, call, nil, "")
			}
			if ev.Tool.ArgsText != "" {
				call.args.WriteString(ev.Tool.ArgsText)
				call.status = toolcall.StatusArgsStreaming
				e.publishCall(sessionID, call, nil, "")
			}
		case agent.StreamEventToolReady:
			for _, call := range calls {
				if call.status.Terminal() || call.resolved {
					continue
				}
				call.status = toolcall.StatusExecuting
				e.publishCall(sessionID, call, nil, "")
			}
		case agent.StreamEventCompleted:
			// Handled after Stream returns.
		}
	}

	streamErr := e.client.Stream(ctx, prompt, onEvent)

	if tail := scanner.Flush(); tail != "" {
		emitText(tail, false)
	}
	emitText("", true)

	// Calls the gateway never resolved are failures, not forever-spinners.
	for _, call := range byID {
		if call.resolved || call.status.Terminal() {
			continue
		}
		call.status = toolcall.StatusFailed
		e.publishCall(sessionID, call, nil, "no result before end of turn")
	}

	if streamErr != nil {
		e.log.WithField("session", sessionID).Warnf("stream failed: %v", streamErr)
		e.publish(events.Event{
			Type:      events.EventTaskError,
			SessionID: sessionID,
			Timestamp: time.Now(),
			Payload:   events.TaskResult{Status: "failed", Error: streamErr.Error()},
		})
		return streamErr
	}

	e.publish(events.Event{
		Type:      events.EventTaskCompleted,
		SessionID: sessionID,
		Timestamp: time.Now(),
		Payload:   events.TaskResult{Status: "completed"},
	})
	return nil
}

func (e *Engine) publishCall(sessionID string, call *trackedCall, result []byte, errText string) {
	inv := toolcall.Invocation{
		CallID: call.id,
		Tool:   call.tool,
		Status: call.status,
		Error:  errText,
	}
	if args := call.args.String(); args != "" {
		inv.Args = []byte(args)
	}
	if len(result) > 0 {
		inv.Result = result
	}
	e.publish(events.ToolCallEvent(sessionID, inv))
}

func (e *Engine) publish(evt events.Event) {
	if e.bus == nil {
		return
	}
	e.bus.Publish(evt)
}
