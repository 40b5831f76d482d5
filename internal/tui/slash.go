package tui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

type slashCommand struct {
	Name string
	Help string
}

var slashCommands = []slashCommand{
	{Name: "help", Help: "show available commands"},
	{Name: "copy", Help: "copy the last completed tool result"},
	{Name: "accent", Help: "set the accent color, e.g. /accent #89b4fa"},
	{Name: "quit", Help: "exit reportchat"},
}

// slashState tracks the command palette while the input starts with "/".
type slashState struct {
	open     bool
	matches  []slashCommand
	selected int
}

type slashSource []slashCommand

func (s slashSource) String(i int) string { return s[i].Name }
func (s slashSource) Len() int            { return len(s) }

// update refreshes the palette from the current input line.
func (s *slashState) update(input string) {
	if !strings.HasPrefix(input, "/") || strings.ContainsRune(input, ' ') {
		s.close()
		return
	}
	query := strings.TrimPrefix(input, "/")
	s.open = true
	if query == "" {
		s.matches = slashCommands
	} else {
		results := fuzzy.FindFrom(query, slashSource(slashCommands))
		s.matches = make([]slashCommand, 0, len(results))
		for _, r := range results {
			s.matches = append(s.matches, slashCommands[r.Index])
		}
	}
	if s.selected >= len(s.matches) {
		s.selected = 0
	}
}

func (s *slashState) close() {
	s.open = false
	s.matches = nil
	s.selected = 0
}

func (s *slashState) move(delta int) {
	if len(s.matches) == 0 {
		return
	}
	s.selected = (s.selected + delta + len(s.matches)) % len(s.matches)
}

// current returns the highlighted command, if any.
func (s *slashState) current() (slashCommand, bool) {
	if !s.open || len(s.matches) == 0 {
		return slashCommand{}, false
	}
	return s.matches[s.selected], true
}

// parseSlash splits a submitted "/cmd args" line.
func parseSlash(input string) (name, args string, ok bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", "", false
	}
	rest := strings.TrimPrefix(input, "/")
	parts := strings.SplitN(rest, " ", 2)
	name = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}
	return name, args, name != ""
}
