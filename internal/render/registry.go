package render

import (
	"fmt"
	"sync"

	"reportchat/internal/toolcall"
)

// Wildcard matches every tool name not bound exactly. The agent controls
// the tool namespace, so the host registers one wildcard renderer and gets
// coverage for tools it has never heard of.
const Wildcard = "*"

// RendererFunc turns one invocation snapshot into a fragment. Renderers
// are pure with respect to the registry: no I/O, no retained state.
type RendererFunc func(ctx Context, inv toolcall.Invocation) Fragment

// NoMatchError is returned by Dispatch when neither an exact nor a
// wildcard binding exists. With a wildcard registered it is unreachable;
// seeing one means the surface was wired up wrong.
type NoMatchError struct {
	Tool string
}

func (e NoMatchError) Error() string {
	return fmt.Sprintf("no renderer registered for tool %q", e.Tool)
}

// Registry maps name patterns to renderers. The host re-registers on every
// surface rebuild, so Register replaces in place rather than accumulating.
type Registry struct {
	mu    sync.RWMutex
	exact map[string]RendererFunc
	any   RendererFunc
}

func NewRegistry() *Registry {
	return &Registry{exact: make(map[string]RendererFunc)}
}

// Register binds fn to pattern, replacing any prior binding for the same
// pattern. pattern is an exact tool name or Wildcard. Nil renderers remove
// the binding.
func (r *Registry) Register(pattern string, fn RendererFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pattern == Wildcard {
		r.any = fn
		return
	}
	if fn == nil {
		delete(r.exact, pattern)
		return
	}
	r.exact[pattern] = fn
}

// Dispatch resolves the renderer for inv and invokes it. Exact bindings win
// over the wildcard. Dispatch is synchronous and never blocks.
func (r *Registry) Dispatch(ctx Context, inv toolcall.Invocation) (Fragment, error) {
	r.mu.RLock()
	fn, ok := r.exact[inv.Tool]
	if !ok || fn == nil {
		fn = r.any
	}
	r.mu.RUnlock()

	if fn == nil {
		return Fragment{}, NoMatchError{Tool: inv.Tool}
	}
	return fn(ctx, inv), nil
}
