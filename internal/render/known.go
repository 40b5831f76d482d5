package render

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"reportchat/internal/toolcall"
)

// Tool names the report agent is known to use. Everything else goes through
// the wildcard; these get richer, purpose-built fragments.
const (
	ToolMergeScanReports = "merge_scan_reports"
	ToolWebSearch        = "web_search"
)

// RegisterDefaults installs the wildcard resolver plus the known-tool
// renderers. Safe to call on every surface rebuild: bindings replace in
// place.
func RegisterDefaults(reg *Registry) {
	reg.Register(Wildcard, Resolve)
	reg.Register(ToolMergeScanReports, RenderMergeScanReports)
	reg.Register(ToolWebSearch, RenderWebSearch)
}

// RenderMergeScanReports renders the report-merge tool with its filter
// arguments up front and, once complete, the bundle summary the tool
// returns (scan count, severity breakdown, artefact paths).
func RenderMergeScanReports(ctx Context, inv toolcall.Invocation) Fragment {
	if inv.Status != toolcall.StatusComplete {
		return Resolve(ctx, inv)
	}
	st := styled(ctx)
	f := Fragment{Lines: []Line{
		line(Span{Text: "✓ ", Style: st.ok}, Span{Text: "merge_scan_reports", Style: st.accent}, Span{Text: " report bundle ready", Style: st.dim}),
	}}
	f.Lines = append(f.Lines, argLines(ctx, st, inv, false)...)

	res := string(inv.Result)
	if id := gjson.Get(res, "merged_report_id").String(); id != "" {
		f.Lines = append(f.Lines, detail(ctx, st, "report: "+id))
	}
	if n := gjson.Get(res, "scan_count"); n.Exists() {
		f.Lines = append(f.Lines, detail(ctx, st, fmt.Sprintf("scans merged: %d", n.Int())))
	}
	if stats := gjson.Get(res, "severity_stats"); stats.IsObject() {
		parts := make([]string, 0, 4)
		stats.ForEach(func(key, value gjson.Result) bool {
			parts = append(parts, fmt.Sprintf("%s=%d", key.String(), value.Int()))
			return true
		})
		if len(parts) > 0 {
			f.Lines = append(f.Lines, detail(ctx, st, "severity: "+strings.Join(parts, " ")))
		}
	}
	for _, key := range []string{"pdf_path", "json_path"} {
		if p := gjson.Get(res, key).String(); p != "" {
			f.Lines = append(f.Lines, detail(ctx, st, key+": "+p))
		}
	}
	if len(f.Lines) == 1 {
		// Result did not match the bundle contract; fall back to generic.
		return Resolve(ctx, inv)
	}
	return f
}

// RenderWebSearch renders the search tool as a query line plus a hit count
// instead of dumping the full result payload into the transcript.
func RenderWebSearch(ctx Context, inv toolcall.Invocation) Fragment {
	st := styled(ctx)
	query, _ := toolcall.ParseArgs(inv.Args).Get("query")
	query = strings.TrimSpace(query)

	switch inv.Status {
	case toolcall.StatusExecuting, toolcall.StatusArgsStreaming:
		label := " searching"
		if query != "" {
			label = " searching: " + query
		}
		return Fragment{Lines: []Line{
			line(Span{Text: "⌕ ", Style: st.accent}, Span{Text: "web_search", Style: st.accent}, Span{Text: fitWidth(label, ctx.width()), Style: st.dim}),
		}}
	case toolcall.StatusComplete:
		f := Fragment{Lines: []Line{
			line(Span{Text: "⌕ ", Style: st.ok}, Span{Text: "web_search", Style: st.accent}, Span{Text: " done", Style: st.dim}),
		}}
		if query != "" {
			f.Lines = append(f.Lines, detail(ctx, st, "query: "+query))
		}
		if hits := gjson.GetBytes(inv.Result, "results.#"); hits.Exists() {
			f.Lines = append(f.Lines, detail(ctx, st, fmt.Sprintf("results: %d", hits.Int())))
		}
		return f
	default:
		return Resolve(ctx, inv)
	}
}
