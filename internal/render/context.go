package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// DefaultAccent is used when the host supplies no presentation context.
const DefaultAccent = lipgloss.Color("#7D56F4")

// Context carries the ambient presentation inputs threaded uniformly into
// every render, regardless of tool identity. The core accepts whatever the
// host supplies and does not validate it.
type Context struct {
	Accent lipgloss.Color
	Width  int
}

func (c Context) accent() lipgloss.Color {
	if c.Accent == "" {
		return DefaultAccent
	}
	return c.Accent
}

func (c Context) width() int {
	if c.Width <= 0 {
		return 80
	}
	return c.Width
}

// Span is a run of text with one style.
type Span struct {
	Text  string
	Style lipgloss.Style
}

// Line is a single transcript row built from spans.
type Line struct {
	Spans []Span
}

// Fragment is the renderable unit returned for one tool invocation. The
// host mounts and replaces fragments keyed by call id.
type Fragment struct {
	Lines []Line
}

func (f Fragment) Empty() bool { return len(f.Lines) == 0 }

// String renders the fragment with styles applied, one line per row.
func (f Fragment) String() string {
	out := make([]string, 0, len(f.Lines))
	for _, line := range f.Lines {
		var sb strings.Builder
		for _, sp := range line.Spans {
			sb.WriteString(sp.Style.Render(sp.Text))
		}
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

// Plain renders the fragment without any styling, for logs and tests.
func (f Fragment) Plain() string {
	out := make([]string, 0, len(f.Lines))
	for _, line := range f.Lines {
		var sb strings.Builder
		for _, sp := range line.Spans {
			sb.WriteString(sp.Text)
		}
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

func line(spans ...Span) Line {
	return Line{Spans: spans}
}

// fitWidth truncates a cell-aware string to the given display width.
func fitWidth(text string, width int) string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}
	if width <= 1 {
		return "…"
	}
	return runewidth.Truncate(text, width-1, "") + "…"
}
