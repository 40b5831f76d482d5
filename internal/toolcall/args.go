package toolcall

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ArgsView is the defensive, always-renderable view of an argument payload.
// A streaming payload is often a truncated JSON fragment; the view carries
// whatever could be parsed plus the raw text so renderers never have to
// deal with a parse error themselves.
type ArgsView struct {
	// Fields holds the top-level object keys in sorted order when the
	// payload parsed (possibly after repair) into an object.
	Fields []ArgField
	// Raw is the payload text, always set for non-empty payloads.
	Raw string
	// Complete is true when the payload parsed strictly without repair.
	Complete bool
}

type ArgField struct {
	Key   string
	Value string
}

// Empty reports whether there is nothing to show. An empty payload is a
// legitimate state: tools may take no arguments.
func (v ArgsView) Empty() bool {
	return len(v.Fields) == 0 && strings.TrimSpace(v.Raw) == ""
}

// Get returns the value for a top-level key, if it parsed.
func (v ArgsView) Get(key string) (string, bool) {
	for _, f := range v.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// ParseArgs parses a possibly-incomplete argument payload. It never fails:
// a strict parse wins, a repaired parse degrades to best-effort fields, and
// anything else falls back to the raw text.
func ParseArgs(raw json.RawMessage) ArgsView {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return ArgsView{Complete: true}
	}
	view := ArgsView{Raw: text}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil {
		view.Fields = flattenFields(obj)
		view.Complete = true
		return view
	}

	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return view
	}
	if err := json.Unmarshal([]byte(repaired), &obj); err != nil {
		return view
	}
	view.Fields = flattenFields(obj)
	return view
}

func flattenFields(obj map[string]any) []ArgField {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]ArgField, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, ArgField{Key: k, Value: formatValue(obj[k])})
	}
	return fields
}

func formatValue(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case nil:
		return "null"
	case float64, bool:
		return fmt.Sprintf("%v", v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}
