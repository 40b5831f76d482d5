package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"reportchat/internal/agent"
	"reportchat/internal/events"
	"reportchat/internal/history"
	"reportchat/internal/logger"
	"reportchat/internal/render"
	"reportchat/internal/toolcall"
)

// TurnRunner runs one conversation turn against the agent runtime.
type TurnRunner interface {
	RunTurn(ctx context.Context, sessionID string, history []agent.Message) error
}

type Options struct {
	Bus    *events.Bus
	Runner TurnRunner
	Accent string
	// OnAccentChange persists an accent picked with /accent. Optional.
	OnAccentChange func(accent string) error
	// Recall seeds Ctrl+P/Ctrl+N prompt recall, oldest first.
	Recall []string
	// OnPrompt is called with every submitted prompt. Optional.
	OnPrompt func(text string)
}

type busEventMsg struct {
	Event events.Event
	OK    bool
}

type turnDoneMsg struct {
	Err error
}

type Model struct {
	textarea   textarea.Model
	viewport   viewport.Model
	spinner    spinner.Model
	transcript *transcript
	registry   *render.Registry
	slash      slashState

	bus    *events.Bus
	busSub <-chan events.Event
	runner TurnRunner
	log    *logger.LogEntry

	sessionID string
	history   []agent.Message
	streaming *textCell
	accent    lipgloss.Color
	onAccent  func(string) error
	recall    *history.Cursor
	onPrompt  func(string)
	width     int
	height    int
	busy      bool
	notice    string
	err       error
	quitting  bool
}

func New(opts Options) *Model {
	ta := textarea.New()
	ta.Placeholder = "Ask the report agent… (/ for commands)"
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	accent := lipgloss.Color(opts.Accent)
	if opts.Accent == "" {
		accent = render.DefaultAccent
	}

	m := &Model{
		textarea:   ta,
		viewport:   viewport.New(80, 20),
		spinner:    sp,
		transcript: newTranscript(),
		registry:   render.NewRegistry(),
		bus:        opts.Bus,
		runner:     opts.Runner,
		log:        logger.Named("tui"),
		sessionID:  uuid.NewString(),
		accent:     accent,
		onAccent:   opts.OnAccentChange,
		recall:     history.NewCursor(opts.Recall),
		onPrompt:   opts.OnPrompt,
	}
	if opts.Bus != nil {
		m.busSub = opts.Bus.Subscribe()
	}
	m.rebuildRegistry()
	return m
}

// rebuildRegistry reinstalls all renderer bindings. Called on every surface
// (re)build; Register replaces in place so repeats are harmless.
func (m *Model) rebuildRegistry() {
	render.RegisterDefaults(m.registry)
}

func (m *Model) renderContext() render.Context {
	width := m.width
	if width <= 0 {
		width = 80
	}
	return render.Context{Accent: m.accent, Width: width}
}

func (m *Model) History() []agent.Message { return m.history }
func (m *Model) SessionID() string        { return m.sessionID }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick, m.waitEvent())
}

func (m *Model) waitEvent() tea.Cmd {
	if m.busSub == nil {
		return nil
	}
	ch := m.busSub
	return func() tea.Msg {
		evt, ok := <-ch
		return busEventMsg{Event: evt, OK: ok}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = maxInt(msg.Height-4, 3)
		m.textarea.SetWidth(msg.Width - 2)
		// Window changes rebuild the surface; registration must stay
		// idempotent across them.
		m.rebuildRegistry()
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyUp:
			if m.slash.open {
				m.slash.move(-1)
				return m, nil
			}
		case tea.KeyDown:
			if m.slash.open {
				m.slash.move(1)
				return m, nil
			}
		case tea.KeyCtrlP:
			if line, ok := m.recall.Prev(); ok {
				m.textarea.SetValue(line)
				m.textarea.CursorEnd()
			}
			return m, nil
		case tea.KeyCtrlN:
			if line, ok := m.recall.Next(); ok {
				m.textarea.SetValue(line)
				m.textarea.CursorEnd()
			}
			return m, nil
		case tea.KeyTab:
			if cmd, ok := m.slash.current(); ok {
				m.textarea.SetValue("/" + cmd.Name)
				m.textarea.CursorEnd()
				return m, nil
			}
		case tea.KeyEnter:
			return m.submit()
		}
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		m.slash.update(m.textarea.Value())
		cmds = append(cmds, cmd)

	case busEventMsg:
		if !msg.OK {
			return m, nil
		}
		m.applyEvent(msg.Event)
		m.refreshViewport()
		cmds = append(cmds, m.waitEvent())

	case turnDoneMsg:
		m.busy = false
		if msg.Err != nil {
			m.err = msg.Err
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return m, nil
	}

	if name, args, ok := parseSlash(input); ok {
		m.textarea.Reset()
		m.slash.close()
		return m, m.runCommand(name, args)
	}

	if m.busy {
		m.notice = "still working on the previous turn"
		return m, nil
	}
	m.textarea.Reset()
	m.slash.close()
	m.notice = ""
	m.err = nil

	m.recall.Push(input)
	if m.onPrompt != nil {
		m.onPrompt(input)
	}
	m.transcript.appendText("you", input)
	m.history = append(m.history, agent.Message{Role: agent.RoleUser, Content: input})
	m.streaming = nil
	m.busy = true
	m.refreshViewport()

	history := make([]agent.Message, len(m.history))
	copy(history, m.history)
	runner := m.runner
	sessionID := m.sessionID
	return m, func() tea.Msg {
		if runner == nil {
			return turnDoneMsg{Err: fmt.Errorf("no runtime configured")}
		}
		return turnDoneMsg{Err: runner.RunTurn(context.Background(), sessionID, history)}
	}
}

func (m *Model) runCommand(name, args string) tea.Cmd {
	switch name {
	case "quit":
		m.quitting = true
		return tea.Quit
	case "help":
		var sb strings.Builder
		for _, cmd := range slashCommands {
			fmt.Fprintf(&sb, "/%s — %s\n", cmd.Name, cmd.Help)
		}
		m.transcript.appendText("help", sb.String())
		m.refreshViewport()
	case "copy":
		result, ok := m.transcript.lastCompletedResult()
		if !ok {
			m.notice = "no completed tool result to copy"
			return nil
		}
		if err := clipboard.WriteAll(result); err != nil {
			m.notice = "clipboard: " + err.Error()
			return nil
		}
		m.notice = "tool result copied"
	case "accent":
		if args == "" {
			m.notice = "usage: /accent #rrggbb"
			return nil
		}
		m.accent = lipgloss.Color(args)
		if m.onAccent != nil {
			if err := m.onAccent(args); err != nil {
				m.log.Warnf("persist accent: %v", err)
			}
		}
		m.notice = "accent set to " + args
		m.refreshViewport()
	default:
		m.notice = "unknown command: /" + name
	}
	return nil
}

// applyEvent folds one runtime event into the transcript.
func (m *Model) applyEvent(evt events.Event) {
	if evt.SessionID != "" && evt.SessionID != m.sessionID {
		return
	}
	switch evt.Type {
	case events.EventToolCall:
		inv, ok := evt.Payload.(toolcall.Invocation)
		if !ok {
			return
		}
		// Interleave: tool activity ends the current text block.
		m.streaming = nil
		m.transcript.upsertTool(m.registry, inv)
	case events.EventAgentOutput:
		out, ok := evt.Payload.(events.AgentOutput)
		if !ok {
			return
		}
		if out.Final {
			if m.streaming != nil {
				m.history = append(m.history, agent.Message{Role: agent.RoleAssistant, Content: m.streaming.text})
			}
			m.streaming = nil
			return
		}
		if out.Content == "" {
			return
		}
		if m.streaming == nil {
			m.streaming = m.transcript.appendText("agent", "")
		}
		m.streaming.text += out.Content
	case events.EventTaskError:
		if res, ok := evt.Payload.(events.TaskResult); ok && res.Error != "" {
			m.transcript.appendText("error", res.Error)
		}
	}
}

func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.transcript.view(m.renderContext()))
	m.viewport.GotoBottom()
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.statusLine())
	sb.WriteString("\n")
	sb.WriteString(m.textarea.View())
	if m.slash.open {
		sb.WriteString("\n")
		sb.WriteString(m.slashView())
	}
	return sb.String()
}

func (m *Model) statusLine() string {
	dim := lipgloss.NewStyle().Faint(true)
	switch {
	case m.err != nil:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#CC0000")).Render("error: " + m.err.Error())
	case m.busy:
		return m.spinner.View() + dim.Render(" agent working…")
	case m.notice != "":
		return dim.Render(m.notice)
	default:
		return dim.Render("ready")
	}
}

func (m *Model) slashView() string {
	dim := lipgloss.NewStyle().Faint(true)
	sel := lipgloss.NewStyle().Foreground(m.accent).Bold(true)
	var rows []string
	for i, cmd := range m.slash.matches {
		row := "/" + cmd.Name + "  " + cmd.Help
		if i == m.slash.selected {
			rows = append(rows, sel.Render("▸ "+row))
		} else {
			rows = append(rows, dim.Render("  "+row))
		}
	}
	return strings.Join(rows, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
