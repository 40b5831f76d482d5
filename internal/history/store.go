// Package history persists prompt lines across sessions so the input box
// can recall them.
package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Entry struct {
	Text string    `json:"text"`
	TS   time.Time `json:"ts"`
}

// Store is a jsonl file of submitted prompts, newest last. Corrupt lines
// are skipped on load so a bad write never locks the user out.
type Store struct {
	Path string
}

func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".reportchat", "history.jsonl"), nil
}

func NewDefault() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return &Store{Path: path}, nil
}

func (s *Store) ensureDir() error {
	if s == nil || strings.TrimSpace(s.Path) == "" {
		return errors.New("history store path is empty")
	}
	return os.MkdirAll(filepath.Dir(s.Path), 0o755)
}

// Append records one submitted prompt. Blank input is dropped silently.
func (s *Store) Append(text string) error {
	if s == nil {
		return errors.New("history store is nil")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(Entry{Text: text, TS: time.Now()})
	if err != nil {
		return err
	}
	_, err = f.Write(append(data, '\n'))
	return err
}

// Recent returns up to limit prompts, oldest first. limit <= 0 means all.
func (s *Store) Recent(limit int) ([]string, error) {
	if s == nil {
		return nil, errors.New("history store is nil")
	}
	if strings.TrimSpace(s.Path) == "" {
		return nil, errors.New("history store path is empty")
	}
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var out []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		if strings.TrimSpace(e.Text) == "" {
			continue
		}
		out = append(out, e.Text)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// Cursor walks loaded prompts newest-first, the way Ctrl+P/Ctrl+N move
// through shell history. pos == len(lines) means the empty prompt past
// the newest entry.
type Cursor struct {
	lines []string
	pos   int
}

func NewCursor(lines []string) *Cursor {
	return &Cursor{lines: lines, pos: len(lines)}
}

// Prev steps toward older entries. The second return is false at the
// oldest entry (or with no history at all).
func (c *Cursor) Prev() (string, bool) {
	if c == nil || c.pos == 0 {
		return "", false
	}
	c.pos--
	return c.lines[c.pos], true
}

// Next steps back toward newer entries; past the newest it returns
// ("", true) so the caller can restore the empty prompt.
func (c *Cursor) Next() (string, bool) {
	if c == nil || c.pos >= len(c.lines) {
		return "", false
	}
	c.pos++
	if c.pos == len(c.lines) {
		return "", true
	}
	return c.lines[c.pos], true
}

// Push appends a freshly submitted line and resets the cursor to the
// empty prompt.
func (c *Cursor) Push(line string) {
	if c == nil {
		return
	}
	line = strings.TrimSpace(line)
	if line != "" {
		c.lines = append(c.lines, line)
	}
	c.pos = len(c.lines)
}
