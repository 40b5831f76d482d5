package toolcall

import "sync"

// Tracker coalesces invocation updates per call id and keeps only the
// latest-known snapshot. Updates arrive from an asynchronous stream and may
// be duplicated or stale; Apply makes re-delivery idempotent and refuses
// lifecycle regression, so a stale pending can never flip a call that
// already rendered as complete.
type Tracker struct {
	mu    sync.Mutex
	calls map[string]Invocation
	order []string
}

func NewTracker() *Tracker {
	return &Tracker{calls: make(map[string]Invocation)}
}

// Apply merges one update into the tracked state and returns the snapshot
// that should be rendered for the call. changed is false when the update
// was stale or a duplicate and the display needs no refresh.
func (t *Tracker) Apply(inv Invocation) (Invocation, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if inv.CallID == "" || !inv.Status.Valid() {
		return inv, false
	}

	prev, seen := t.calls[inv.CallID]
	if !seen {
		t.calls[inv.CallID] = inv
		t.order = append(t.order, inv.CallID)
		return inv, true
	}

	if inv.Status.Rank() < prev.Status.Rank() {
		return prev, false
	}

	merged := inv
	if merged.Tool == "" {
		merged.Tool = prev.Tool
	}
	// Same stage, same payload: idempotent re-delivery.
	if merged.Status == prev.Status &&
		string(merged.Args) == string(prev.Args) &&
		string(merged.Result) == string(prev.Result) &&
		merged.Error == prev.Error {
		return prev, false
	}
	t.calls[inv.CallID] = merged
	return merged, true
}

// Latest returns the tracked snapshot for a call id.
func (t *Tracker) Latest(callID string) (Invocation, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	inv, ok := t.calls[callID]
	return inv, ok
}

// Snapshots returns all tracked calls in first-seen order.
func (t *Tracker) Snapshots() []Invocation {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Invocation, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.calls[id])
	}
	return out
}
