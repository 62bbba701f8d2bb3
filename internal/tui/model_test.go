package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tech-concierge/internal/catalog"
	"github.com/Veraticus/tech-concierge/internal/concierge"
	"github.com/Veraticus/tech-concierge/internal/model"
	"github.com/Veraticus/tech-concierge/internal/storage"
)

func newTestModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	cfg := defaultConfig()
	cfg.Chatter = concierge.NewAgent(cat, nil, storage.NewMemoryStorage(), nil)
	cfg.Width, cfg.Height = 120, 40
	for _, opt := range opts {
		opt(&cfg)
	}
	return newModel(context.Background(), cfg)
}

func typeText(m Model, text string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(Model)
}

func TestModel_InitialView(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	assert.Contains(t, view, "Tech Concierge")
	assert.Contains(t, view, "Nothing captured yet.")
	assert.Contains(t, view, "enter send")
}

func TestModel_SendAndReply(t *testing.T) {
	var sessions []string
	m := newTestModel(t, WithSessionCallback(func(id string) { sessions = append(sessions, id) }))

	m = typeText(m, "I'm into gaming")
	assert.Equal(t, "I'm into gaming", m.input.Value())

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.waiting)
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), "Thinking...")

	msg := m.sendMessage("I'm into gaming")()
	reply, ok := msg.(replyMsg)
	require.True(t, ok)
	require.NoError(t, reply.err)

	updated, _ = m.Update(reply)
	m = updated.(Model)
	assert.False(t, m.waiting)
	assert.Equal(t, model.UseCaseGaming, m.captured.UseCase)
	assert.NotEmpty(t, m.SessionID())
	assert.Equal(t, []string{m.SessionID()}, sessions)
	assert.Contains(t, m.renderTranscript(100), "You: I'm into gaming")
}

func TestModel_ReplyWithBundles(t *testing.T) {
	m := newTestModel(t)
	m.waiting = true

	cat, err := catalog.Default()
	require.NoError(t, err)
	bundle, found := cat.Bundle("gaming-laptop-bundle")
	require.True(t, found)

	updated, _ := m.Update(replyMsg{result: &concierge.ChatResult{
		SessionID: "s-1",
		Reply:     "Here are a few picks",
		Bundles:   []model.Bundle{bundle},
		Context:   model.Context{Budget: 1500, UseCase: model.UseCaseGaming},
	}})
	m = updated.(Model)

	transcript := m.renderTranscript(100)
	assert.Contains(t, transcript, "Here are a few picks")
	assert.Contains(t, transcript, "Portable Gaming Rig")
	assert.Contains(t, m.renderContextPanel(), "$1500")
	assert.Contains(t, m.renderContextPanel(), "session s-1")
}

func TestModel_ReplyError(t *testing.T) {
	m := newTestModel(t)
	m.waiting = true

	updated, _ := m.Update(replyMsg{err: errors.New("upstream down")})
	m = updated.(Model)

	assert.False(t, m.waiting)
	assert.Contains(t, m.renderTranscript(100), "upstream down")
}

func TestModel_IgnoresBlankAndBusySubmit(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		waiting bool
	}{
		{name: "blank input", text: "   "},
		{name: "waiting for reply", text: "hello", waiting: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m.waiting = tt.waiting
			m = typeText(m, tt.text)

			updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			assert.Nil(t, cmd)
			assert.Len(t, updated.(Model).entries, 1)
		})
	}
}

func TestModel_ToggleContextAndResize(t *testing.T) {
	m := newTestModel(t)
	assert.True(t, m.contextVisible())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	assert.False(t, m.contextVisible())
	assert.Equal(t, 118, m.viewport.Width)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	updated, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = updated.(Model)
	assert.False(t, m.contextVisible())
	assert.Equal(t, 14, m.viewport.Height)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, updated.(Model).View())
}

func TestRun_RequiresChatter(t *testing.T) {
	_, err := Run(context.Background())
	assert.Error(t, err)
}
