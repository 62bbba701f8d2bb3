// Package themes holds the color schemes for the chat TUI.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	UserLabel     lipgloss.Style
	AgentLabel    lipgloss.Style
	Normal        lipgloss.Style
	StatusError   lipgloss.Style
	StatusPending lipgloss.Style
	Help          lipgloss.Style
	Panel         lipgloss.Style
	Transcript    lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Error         lipgloss.Color
}

func build(primary, secondary, foreground, muted, border, errColor lipgloss.Color) Theme {
	return Theme{
		Primary: primary,
		Muted:   muted,
		Border:  border,
		Error:   errColor,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		UserLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(secondary),
		AgentLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Normal: lipgloss.NewStyle().
			Foreground(foreground),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(muted),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Transcript: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border),
	}
}

// Default is the default theme.
var Default = build(
	lipgloss.Color("#0046BE"),
	lipgloss.Color("#7FB2FF"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#ef4444"),
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#89dceb"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#f38ba8"),
)

// ByName returns the named theme, falling back to Default.
func ByName(name string) Theme {
	switch name {
	case "catppuccin", "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
