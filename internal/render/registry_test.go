package render

import (
	"errors"
	"fmt"
	"testing"

	"reportchat/internal/toolcall"
)

func textRenderer(text string) RendererFunc {
	return func(ctx Context, inv toolcall.Invocation) Fragment {
		return Fragment{Lines: []Line{{Spans: []Span{{Text: text}}}}}
	}
}

func TestRegistry_WildcardCoversUnknownTools(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Wildcard, Resolve)

	for i, tool := range []string{"lookupStockPrice", "never_seen_before", "", "emoji🔧tool"} {
		frag, err := reg.Dispatch(Context{}, toolcall.Invocation{
			CallID: fmt.Sprintf("c%d", i),
			Tool:   tool,
			Status: toolcall.StatusPending,
		})
		if err != nil {
			t.Fatalf("tool %q: unexpected error %v", tool, err)
		}
		if frag.Empty() {
			t.Fatalf("tool %q: empty fragment", tool)
		}
	}
}

func TestRegistry_ExactBeatsWildcard(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Wildcard, textRenderer("wildcard"))
	reg.Register("X", textRenderer("exact"))

	frag, err := reg.Dispatch(Context{}, toolcall.Invocation{CallID: "c1", Tool: "X", Status: toolcall.StatusPending})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if got := frag.Plain(); got != "exact" {
		t.Fatalf("expected exact renderer to win, got %q", got)
	}

	frag, err = reg.Dispatch(Context{}, toolcall.Invocation{CallID: "c2", Tool: "Y", Status: toolcall.StatusPending})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if got := frag.Plain(); got != "wildcard" {
		t.Fatalf("expected wildcard for unbound name, got %q", got)
	}
}

func TestRegistry_ReRegistrationReplaces(t *testing.T) {
	reg := NewRegistry()
	reg.Register("X", textRenderer("stale"))
	reg.Register("X", textRenderer("latest"))

	frag, err := reg.Dispatch(Context{}, toolcall.Invocation{CallID: "c1", Tool: "X", Status: toolcall.StatusPending})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if got := frag.Plain(); got != "latest" {
		t.Fatalf("stale renderer still bound: %q", got)
	}

	// Same for the wildcard slot.
	reg.Register(Wildcard, textRenderer("w1"))
	reg.Register(Wildcard, textRenderer("w2"))
	frag, _ = reg.Dispatch(Context{}, toolcall.Invocation{CallID: "c2", Tool: "Z", Status: toolcall.StatusPending})
	if got := frag.Plain(); got != "w2" {
		t.Fatalf("stale wildcard still bound: %q", got)
	}
}

func TestRegistry_NoMatchWithoutBindings(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Dispatch(Context{}, toolcall.Invocation{CallID: "c1", Tool: "X", Status: toolcall.StatusPending})
	var noMatch NoMatchError
	if !errors.As(err, &noMatch) {
		t.Fatalf("expected NoMatchError, got %v", err)
	}
	if noMatch.Tool != "X" {
		t.Fatalf("error should name the tool: %#v", noMatch)
	}
}

func TestRegistry_NilRendererUnbinds(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Wildcard, textRenderer("wildcard"))
	reg.Register("X", textRenderer("exact"))
	reg.Register("X", nil)

	frag, err := reg.Dispatch(Context{}, toolcall.Invocation{CallID: "c1", Tool: "X", Status: toolcall.StatusPending})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if got := frag.Plain(); got != "wildcard" {
		t.Fatalf("unbound exact should fall through to wildcard, got %q", got)
	}
}
