package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reportchat/internal/render"
	"reportchat/internal/toolcall"
)

// cell is one block in the transcript. Tool cells are keyed by call id and
// replaced in place as their invocation advances.
type cell interface {
	ID() string
	View(ctx render.Context) string
}

type textCell struct {
	id   string
	role string
	text string
}

func (c *textCell) ID() string { return c.id }

func (c *textCell) View(ctx render.Context) string {
	label := lipgloss.NewStyle().Bold(true)
	switch c.role {
	case "you":
		label = label.Foreground(ctx.Accent)
	default:
		label = label.Faint(true)
	}
	return label.Render(c.role+":") + " " + strings.TrimRight(c.text, "\n")
}

// toolCell holds the latest invocation snapshot; rendering goes through the
// registry on every view so re-registration takes effect immediately.
type toolCell struct {
	inv      toolcall.Invocation
	registry *render.Registry
}

func (c *toolCell) ID() string { return c.inv.CallID }

func (c *toolCell) View(ctx render.Context) string {
	frag, err := c.registry.Dispatch(ctx, c.inv)
	if err != nil {
		// Registry misconfiguration; keep the transcript alive and visible.
		return lipgloss.NewStyle().Faint(true).Render("tool " + c.inv.Tool + " (" + err.Error() + ")")
	}
	return frag.String()
}

// transcript is the ordered cell list plus the call-id tracker that makes
// tool updates idempotent and monotonic.
type transcript struct {
	cells   []cell
	tracker *toolcall.Tracker
	nextID  int
}

func newTranscript() *transcript {
	return &transcript{tracker: toolcall.NewTracker()}
}

// appendText adds a text block and returns its cell for streaming appends.
func (t *transcript) appendText(role, text string) *textCell {
	t.nextID++
	c := &textCell{id: "t" + strconv.Itoa(t.nextID), role: role, text: text}
	t.cells = append(t.cells, c)
	return c
}

// upsertTool applies one invocation snapshot. A new call id mounts a new
// cell; a known one updates in place. Stale or duplicate snapshots change
// nothing.
func (t *transcript) upsertTool(reg *render.Registry, inv toolcall.Invocation) bool {
	snap, changed := t.tracker.Apply(inv)
	if !changed {
		return false
	}
	for _, c := range t.cells {
		if tc, ok := c.(*toolCell); ok && tc.inv.CallID == snap.CallID {
			tc.inv = snap
			return true
		}
	}
	t.cells = append(t.cells, &toolCell{inv: snap, registry: reg})
	return true
}

// lastCompletedResult returns the most recent complete tool result, for
// the /copy command.
func (t *transcript) lastCompletedResult() (string, bool) {
	for i := len(t.cells) - 1; i >= 0; i-- {
		tc, ok := t.cells[i].(*toolCell)
		if !ok {
			continue
		}
		if tc.inv.Status == toolcall.StatusComplete && len(tc.inv.Result) > 0 {
			return string(tc.inv.Result), true
		}
	}
	return "", false
}

func (t *transcript) view(ctx render.Context) string {
	blocks := make([]string, 0, len(t.cells))
	for _, c := range t.cells {
		blocks = append(blocks, c.View(ctx))
	}
	return strings.Join(blocks, "\n\n")
}
