package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reportchat/internal/toolcall"
)

const maxResultLines = 20

// Resolve is the wildcard renderer: it derives a fragment for any tool from
// the invocation's lifecycle stage alone. Presentation is selected purely
// from Status; a tool with empty args still renders its proper stage.
// Resolve always returns a usable fragment and never panics on malformed
// payloads; parse failures degrade to a raw view.
func Resolve(ctx Context, inv toolcall.Invocation) Fragment {
	st := styled(ctx)
	switch inv.Status {
	case toolcall.StatusPending:
		return Fragment{Lines: []Line{
			line(Span{Text: "• ", Style: st.accent}, Span{Text: toolLabel(inv), Style: st.accent}, Span{Text: " queued", Style: st.dim}),
		}}
	case toolcall.StatusArgsStreaming:
		return streamingFragment(ctx, st, inv)
	case toolcall.StatusExecuting:
		return executingFragment(ctx, st, inv)
	case toolcall.StatusComplete:
		return completedFragment(ctx, st, inv)
	case toolcall.StatusFailed:
		return failedFragment(ctx, st, inv)
	default:
		// Unknown stage from a newer runtime: show the least committal view.
		return Fragment{Lines: []Line{
			line(Span{Text: "• ", Style: st.dim}, Span{Text: toolLabel(inv), Style: st.dim}),
		}}
	}
}

type styleSet struct {
	accent lipgloss.Style
	dim    lipgloss.Style
	ok     lipgloss.Style
	fail   lipgloss.Style
}

func styled(ctx Context) styleSet {
	return styleSet{
		accent: lipgloss.NewStyle().Foreground(ctx.accent()).Bold(true),
		dim:    lipgloss.NewStyle().Faint(true),
		ok:     lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Bold(true),
		fail:   lipgloss.NewStyle().Foreground(lipgloss.Color("#CC0000")).Bold(true),
	}
}

func toolLabel(inv toolcall.Invocation) string {
	name := strings.TrimSpace(inv.Tool)
	if name == "" {
		return "tool"
	}
	return name
}

func streamingFragment(ctx Context, st styleSet, inv toolcall.Invocation) Fragment {
	f := Fragment{Lines: []Line{
		line(Span{Text: "… ", Style: st.accent}, Span{Text: toolLabel(inv), Style: st.accent}, Span{Text: " receiving arguments", Style: st.dim}),
	}}
	f.Lines = append(f.Lines, argLines(ctx, st, inv, true)...)
	return f
}

func executingFragment(ctx Context, st styleSet, inv toolcall.Invocation) Fragment {
	f := Fragment{Lines: []Line{
		line(Span{Text: "⋯ ", Style: st.accent}, Span{Text: toolLabel(inv), Style: st.accent}, Span{Text: " running", Style: st.dim}),
	}}
	f.Lines = append(f.Lines, argLines(ctx, st, inv, false)...)
	return f
}

func completedFragment(ctx Context, st styleSet, inv toolcall.Invocation) Fragment {
	f := Fragment{Lines: []Line{
		line(Span{Text: "✓ ", Style: st.ok}, Span{Text: toolLabel(inv), Style: st.accent}, Span{Text: " completed", Style: st.dim}),
	}}
	f.Lines = append(f.Lines, argLines(ctx, st, inv, false)...)
	f.Lines = append(f.Lines, resultLines(ctx, st, inv.Result)...)
	return f
}

func failedFragment(ctx Context, st styleSet, inv toolcall.Invocation) Fragment {
	f := Fragment{Lines: []Line{
		line(Span{Text: "✗ ", Style: st.fail}, Span{Text: toolLabel(inv), Style: st.accent}, Span{Text: " failed", Style: st.dim}),
	}}
	reason := strings.TrimSpace(inv.Error)
	if reason == "" {
		reason = "no result returned"
	}
	f.Lines = append(f.Lines, detail(ctx, st, "error: "+reason))
	return f
}

// argLines renders the defensive args view. While streaming, a payload that
// could not be repaired shows its raw tail so the user sees progress.
func argLines(ctx Context, st styleSet, inv toolcall.Invocation, streaming bool) []Line {
	view := toolcall.ParseArgs(inv.Args)
	if view.Empty() {
		return nil
	}
	if len(view.Fields) == 0 {
		label := "args (raw): "
		if streaming {
			label = "args (partial): "
		}
		return []Line{detail(ctx, st, label+condense(view.Raw))}
	}
	lines := make([]Line, 0, len(view.Fields))
	for _, field := range view.Fields {
		suffix := ""
		if streaming && !view.Complete {
			suffix = " …"
		}
		lines = append(lines, detail(ctx, st, field.Key+": "+condense(field.Value)+suffix))
	}
	return lines
}

func resultLines(ctx Context, st styleSet, result []byte) []Line {
	text := strings.TrimSpace(string(result))
	if text == "" {
		return nil
	}
	if pretty := prettyResult(result); pretty != "" {
		text = pretty
	}
	rows := strings.Split(text, "\n")
	truncated := false
	if len(rows) > maxResultLines {
		rows = rows[:maxResultLines]
		truncated = true
	}
	lines := []Line{detail(ctx, st, "result:")}
	for _, row := range rows {
		lines = append(lines, line(Span{Text: "    " + fitWidth(row, ctx.width()-4), Style: st.dim}))
	}
	if truncated {
		lines = append(lines, line(Span{Text: "    … (truncated)", Style: st.dim}))
	}
	return lines
}

func prettyResult(result []byte) string {
	view := toolcall.ParseArgs(result)
	if len(view.Fields) == 0 {
		return ""
	}
	rows := make([]string, 0, len(view.Fields))
	for _, field := range view.Fields {
		rows = append(rows, field.Key+": "+condense(field.Value))
	}
	return strings.Join(rows, "\n")
}

func detail(ctx Context, st styleSet, text string) Line {
	return line(
		Span{Text: "  └ ", Style: st.dim},
		Span{Text: fitWidth(condense(text), ctx.width()-4), Style: st.dim},
	)
}

func condense(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
