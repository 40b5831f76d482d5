package runtime

import (
	"encoding/json"
	"strings"
)

// ResultMarker is the agent gateway's inline report of a finished tool
// call. Gateways that execute tools server-side print these as fenced
// blocks inside the markdown stream:
//
//	```tool_result
//	{"call_id":"call-1","tool":"web_search","ok":true,"result":{...}}
//	```
type ResultMarker struct {
	CallID string          `json:"call_id"`
	Tool   string          `json:"tool"`
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

const resultFence = "```tool_result"

// resultScanner extracts result markers from streamed text. Deltas arrive
// at arbitrary byte boundaries, so the scanner buffers the trailing partial
// line and hides marker blocks from the clean text it returns.
type resultScanner struct {
	partial string
	inBlock bool
	block   []string
}

// Write consumes one text delta and returns any markers completed by it
// plus the displayable text with marker blocks removed.
func (s *resultScanner) Write(delta string) ([]ResultMarker, string) {
	s.partial += delta
	var markers []ResultMarker
	var clean strings.Builder

	for {
		idx := strings.IndexByte(s.partial, '\n')
		if idx < 0 {
			break
		}
		line := s.partial[:idx]
		s.partial = s.partial[idx+1:]
		if marker, consumed := s.consumeLine(line); consumed {
			if marker != nil {
				markers = append(markers, *marker)
			}
			continue
		}
		clean.WriteString(line)
		clean.WriteByte('\n')
	}

	// Hold back a partial line that may turn out to open a fence.
	if !s.inBlock && s.partial != "" && !strings.HasPrefix(resultFence, strings.TrimSpace(s.partial)) && !strings.HasPrefix(strings.TrimSpace(s.partial), "```") {
		clean.WriteString(s.partial)
		s.partial = ""
	}
	return markers, clean.String()
}

// Flush returns any text still buffered once the stream ends. An unclosed
// marker block is discarded rather than leaked into the transcript.
func (s *resultScanner) Flush() string {
	if s.inBlock {
		s.inBlock = false
		s.block = nil
		s.partial = ""
		return ""
	}
	out := s.partial
	s.partial = ""
	return out
}

func (s *resultScanner) consumeLine(line string) (*ResultMarker, bool) {
	trim := strings.TrimSpace(line)
	if s.inBlock {
		if strings.HasPrefix(trim, "```") {
			s.inBlock = false
			marker := parseMarker(strings.Join(s.block, "\n"))
			s.block = nil
			return marker, true
		}
		s.block = append(s.block, line)
		return nil, true
	}
	if trim == resultFence {
		s.inBlock = true
		s.block = nil
		return nil, true
	}
	return nil, false
}

func parseMarker(body string) *ResultMarker {
	var marker ResultMarker
	if err := json.Unmarshal([]byte(body), &marker); err != nil {
		return nil
	}
	if marker.CallID == "" && marker.Tool == "" {
		return nil
	}
	return &marker
}
