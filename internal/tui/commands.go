package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/tech-concierge/internal/concierge"
)

const replyTimeout = 60 * time.Second

// sendMessage asks the agent for a reply off the UI goroutine.
func (m Model) sendMessage(text string) tea.Cmd {
	chatter := m.config.Chatter
	req := concierge.ChatRequest{
		Message:   text,
		SessionID: m.sessionID,
		Context:   m.callerContext,
	}
	parent := m.ctx

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, replyTimeout)
		defer cancel()

		result, err := chatter.Chat(ctx, req)
		return replyMsg{result: result, err: err}
	}
}
