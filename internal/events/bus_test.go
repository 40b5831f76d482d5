package events

import (
	"testing"

	"reportchat/internal/toolcall"
)

func TestBus_FanOut(t *testing.T) {
	bus := NewBus()
	a := bus.Subscribe()
	b := bus.Subscribe()

	bus.Publish(ToolCallEvent("s1", toolcall.Invocation{CallID: "c1", Tool: "x", Status: toolcall.StatusPending}))

	for name, ch := range map[string]<-chan Event{"a": a, "b": b} {
		evt := <-ch
		if evt.Type != EventToolCall {
			t.Fatalf("%s: type = %s", name, evt.Type)
		}
		inv, ok := evt.Payload.(toolcall.Invocation)
		if !ok || inv.CallID != "c1" {
			t.Fatalf("%s: payload = %#v", name, evt.Payload)
		}
	}
}

func TestBus_PublishAfterCloseIsNoop(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe()
	bus.Close()
	bus.Publish(Event{Type: EventAgentOutput})

	if _, open := <-ch; open {
		t.Fatalf("subscription should be closed")
	}
}

func TestBus_SubscribeAfterCloseReturnsClosedChannel(t *testing.T) {
	bus := NewBus()
	bus.Close()
	if _, open := <-bus.Subscribe(); open {
		t.Fatalf("late subscription should read closed")
	}
}
