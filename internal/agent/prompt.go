package agent

import "encoding/json"

// ToolSpec describes one tool the agent may call. The schema is passed
// through to the provider untouched.
type ToolSpec struct {
	Name        string
	Description string
	Schema      json.RawMessage
}

type Prompt struct {
	Model             string
	System            string
	Messages          []Message
	Tools             []ToolSpec
	ParallelToolCalls bool
}

// DefaultTools returns the report agent's tool surface. The client renders
// whatever the agent actually calls, so this list is advisory, not a cap.
func DefaultTools() []ToolSpec {
	return []ToolSpec{
		{
			Name:        "merge_scan_reports",
			Description: "Merge JSON security-scan outputs into a single standardised report bundle (PDF + JSON). Optional filter keys: include, since, target.",
			Schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"include": {"type": "string", "description": "glob pattern of scan files to include"},
					"since": {"type": "string", "description": "ISO date or relative window like 7d, 24h"},
					"target": {"type": "string", "description": "regex the scan target must match"}
				}
			}`),
		},
		{
			Name:        "web_search",
			Description: "Search the web and return a list of results for a query.",
			Schema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"query": {"type": "string"}
				},
				"required": ["query"]
			}`),
		},
	}
}
