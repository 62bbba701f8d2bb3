package tui

import (
	"github.com/Veraticus/tech-concierge/internal/cli"
	"github.com/Veraticus/tech-concierge/internal/model"
	"github.com/Veraticus/tech-concierge/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme       themes.Theme
	Chatter     cli.Chatter
	Context     *model.Context
	OnSession   func(id string)
	SessionID   string
	Width       int
	Height      int
	ShowContext bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:       themes.Default,
		Width:       80,
		Height:      24,
		ShowContext: true,
	}
}

// WithChatter sets the agent that answers messages.
func WithChatter(chatter cli.Chatter) Option {
	return func(c *Config) {
		c.Chatter = chatter
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithSession resumes an existing conversation.
func WithSession(id string) Option {
	return func(c *Config) {
		c.SessionID = id
	}
}

// WithContext seeds the conversation with caller-known intent.
func WithContext(ctx *model.Context) Option {
	return func(c *Config) {
		c.Context = ctx
	}
}

// WithSessionCallback is called when the session ID becomes known.
func WithSessionCallback(fn func(id string)) Option {
	return func(c *Config) {
		c.OnSession = fn
	}
}

// WithContextPanel shows or hides the captured-intent panel.
func WithContextPanel(show bool) Option {
	return func(c *Config) {
		c.ShowContext = show
	}
}
