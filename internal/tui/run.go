package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the chat screen until the shopper quits or ctx is canceled.
// It returns the session ID of the conversation.
func Run(ctx context.Context, opts ...Option) (string, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Chatter == nil {
		return "", fmt.Errorf("chatter is required")
	}

	program := tea.NewProgram(
		newModel(ctx, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return "", fmt.Errorf("chat UI failed: %w", err)
	}
	if m, ok := final.(Model); ok {
		return m.SessionID(), nil
	}
	return cfg.SessionID, nil
}
