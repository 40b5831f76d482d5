package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"reportchat/internal/agent"
)

// Result returns what the caller needs after the surface exits.
type Result struct {
	History   []agent.Message
	SessionID string
}

// Run wraps the Bubble Tea entry point.
func Run(opts Options) (Result, error) {
	program := tea.NewProgram(New(opts), tea.WithAltScreen())
	m, err := program.Run()
	if err != nil {
		return Result{}, err
	}
	model, ok := m.(*Model)
	if !ok {
		return Result{}, errors.New("unexpected tui model")
	}
	return Result{History: model.History(), SessionID: model.SessionID()}, nil
}
