// Package tui is the full-screen chat interface for the concierge.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/tech-concierge/internal/cli"
	"github.com/Veraticus/tech-concierge/internal/model"
	"github.com/Veraticus/tech-concierge/internal/tui/themes"
)

const (
	inputCharLimit  = 4000
	contextWidth    = 32
	minContextWidth = 100
)

// Model holds the chat screen state.
type Model struct {
	ctx           context.Context
	callerContext *model.Context
	theme         themes.Theme
	config        Config
	keymap        KeyMap
	input         textinput.Model
	viewport      viewport.Model
	spinner       spinner.Model
	captured      model.Context
	entries       []entry
	sessionID     string
	width         int
	height        int
	waiting       bool
	quitting      bool
	showContext   bool
}

func newModel(ctx context.Context, cfg Config) Model {
	input := textinput.New()
	input.Placeholder = "Ask about laptops, TVs, budgets..."
	input.CharLimit = inputCharLimit
	input.Prompt = "› "
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		ctx:           ctx,
		callerContext: cfg.Context,
		theme:         cfg.Theme,
		config:        cfg,
		keymap:        DefaultKeyMap(),
		input:         input,
		viewport:      viewport.New(cfg.Width, cfg.Height),
		spinner:       s,
		sessionID:     cfg.SessionID,
		width:         cfg.Width,
		height:        cfg.Height,
		showContext:   cfg.ShowContext,
		entries:       []entry{{kind: entryAgent, text: cli.Greeting}},
	}
	if cfg.Context != nil {
		m.captured = cfg.Context.Clone()
	}
	m.handleResize()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.ClearScreen):
			return m, tea.ClearScreen
		case key.Matches(msg, m.keymap.ToggleContext):
			m.showContext = !m.showContext
			m.handleResize()
			return m, nil
		case key.Matches(msg, m.keymap.ScrollUp):
			m.viewport.HalfViewUp()
			return m, nil
		case key.Matches(msg, m.keymap.ScrollDown):
			m.viewport.HalfViewDown()
			return m, nil
		case key.Matches(msg, m.keymap.Send):
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case replyMsg:
		m.handleReply(msg)
		return m, nil

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderChat()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.waiting {
		return m, nil
	}
	if m.config.Chatter == nil {
		m.entries = append(m.entries, entry{kind: entryError, text: "no concierge configured"})
		m.refreshTranscript()
		return m, nil
	}

	m.input.Reset()
	m.entries = append(m.entries, entry{kind: entryUser, text: text})
	m.waiting = true
	m.refreshTranscript()

	return m, tea.Batch(m.spinner.Tick, m.sendMessage(text))
}

func (m *Model) handleReply(msg replyMsg) {
	m.waiting = false
	if msg.err != nil {
		m.entries = append(m.entries, entry{kind: entryError, text: msg.err.Error()})
		m.refreshTranscript()
		return
	}

	result := msg.result
	// The session now carries the caller context.
	m.callerContext = nil
	m.captured = result.Context
	if result.SessionID != "" && result.SessionID != m.sessionID {
		m.sessionID = result.SessionID
		if m.config.OnSession != nil {
			m.config.OnSession(m.sessionID)
		}
	}
	m.entries = append(m.entries, entry{kind: entryAgent, text: result.Reply, result: result})
	m.refreshTranscript()
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	// Title, subtitle, input and help lines plus the transcript border.
	height := m.height - 6
	if height < 3 {
		height = 3
	}
	width := m.transcriptWidth()

	m.viewport.Width = width
	m.viewport.Height = height
	m.input.Width = m.width - 4
	m.refreshTranscript()
}

func (m Model) contextVisible() bool {
	return m.showContext && m.width >= minContextWidth
}

func (m Model) transcriptWidth() int {
	width := m.width - 2
	if m.contextVisible() {
		width -= contextWidth + 2
	}
	if width < 20 {
		width = 20
	}
	return width
}

func (m *Model) refreshTranscript() {
	m.viewport.SetContent(m.renderTranscript(m.viewport.Width))
	m.viewport.GotoBottom()
}

// SessionID returns the conversation's session, empty until the first reply.
func (m Model) SessionID() string {
	return m.sessionID
}
