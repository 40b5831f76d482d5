package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStoreAppendAndRecent(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	path := filepath.Join(tmp, "history.jsonl")
	s := &Store{Path: path}

	if got, err := s.Recent(0); err != nil || len(got) != 0 {
		t.Fatalf("Recent on missing file: got=%v err=%v", got, err)
	}

	if err := s.Append("   "); err != nil {
		t.Fatalf("Append whitespace: %v", err)
	}

	if err := s.Append("one"); err != nil {
		t.Fatalf("Append one: %v", err)
	}
	if err := s.Append("two"); err != nil {
		t.Fatalf("Append two: %v", err)
	}

	// Inject garbage line; loader should skip it.
	if err := os.WriteFile(path, []byte(strings.Join([]string{
		`{"text":"one","ts":"2026-01-01T00:00:00Z"}`,
		`{not json}`,
		`{"text":"two","ts":"2026-01-01T00:00:00Z"}`,
		`{"text":"three","ts":"2026-01-01T00:00:00Z"}`,
		"",
	}, "\n")), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := s.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("Recent len=%d want=%d: %#v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Recent[%d]=%q want=%q", i, got[i], want[i])
		}
	}

	limited, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent limited: %v", err)
	}
	if len(limited) != 2 || limited[0] != "two" || limited[1] != "three" {
		t.Fatalf("Recent(2)=%#v want newest two", limited)
	}
}

func TestStoreAppendErrors(t *testing.T) {
	t.Parallel()

	var s *Store
	if err := s.Append("hi"); err == nil {
		t.Fatalf("expected error for nil store")
	}

	s = &Store{}
	if err := s.Append("hi"); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestCursorWalk(t *testing.T) {
	t.Parallel()

	c := NewCursor([]string{"first", "second", "third"})

	if got, ok := c.Prev(); !ok || got != "third" {
		t.Fatalf("Prev=%q ok=%v want third", got, ok)
	}
	if got, ok := c.Prev(); !ok || got != "second" {
		t.Fatalf("Prev=%q ok=%v want second", got, ok)
	}
	if got, ok := c.Prev(); !ok || got != "first" {
		t.Fatalf("Prev=%q ok=%v want first", got, ok)
	}
	if _, ok := c.Prev(); ok {
		t.Fatalf("Prev past oldest should fail")
	}

	if got, ok := c.Next(); !ok || got != "second" {
		t.Fatalf("Next=%q ok=%v want second", got, ok)
	}
	if got, ok := c.Next(); !ok || got != "third" {
		t.Fatalf("Next=%q ok=%v want third", got, ok)
	}
	if got, ok := c.Next(); !ok || got != "" {
		t.Fatalf("Next past newest should restore empty prompt, got %q ok=%v", got, ok)
	}
	if _, ok := c.Next(); ok {
		t.Fatalf("Next at empty prompt should fail")
	}

	c.Push("fourth")
	if got, ok := c.Prev(); !ok || got != "fourth" {
		t.Fatalf("Prev after Push=%q ok=%v want fourth", got, ok)
	}
}

func TestCursorEmpty(t *testing.T) {
	t.Parallel()

	c := NewCursor(nil)
	if _, ok := c.Prev(); ok {
		t.Fatalf("Prev with no history should fail")
	}
	if _, ok := c.Next(); ok {
		t.Fatalf("Next with no history should fail")
	}
}
