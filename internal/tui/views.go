package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/tech-concierge/internal/cli"
)

func (m Model) renderChat() string {
	title := m.theme.Title.Render(cli.ConciergeIcon + " Tech Concierge")
	subtitle := m.theme.Subtitle.Render("Tell me what you need, your budget and when you need it.")

	transcript := m.theme.Transcript.Render(m.viewport.View())
	body := transcript
	if m.contextVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, transcript, m.renderContextPanel())
	}

	status := m.input.View()
	if m.waiting {
		status = m.spinner.View() + " " + m.theme.StatusPending.Render("Thinking...")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		subtitle,
		body,
		status,
		m.renderHelp(),
	)
}

func (m Model) renderTranscript(width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	blocks := make([]string, 0, len(m.entries))

	for _, e := range m.entries {
		switch e.kind {
		case entryUser:
			blocks = append(blocks, wrap.Render(m.theme.UserLabel.Render("You: ")+e.text))
		case entryError:
			blocks = append(blocks, wrap.Render(m.theme.StatusError.Render(cli.ErrorIcon+" "+e.text)))
		default:
			block := wrap.Render(m.theme.AgentLabel.Render("Concierge: ") + m.theme.Normal.Render(e.text))
			if e.result != nil && len(e.result.Bundles) > 0 {
				block += "\n" + cli.RenderBundles(e.result.Bundles)
			}
			blocks = append(blocks, block)
		}
	}

	return strings.Join(blocks, "\n\n")
}

func (m Model) renderContextPanel() string {
	content := m.theme.Title.Render("What I know") + "\n" + cli.RenderContext(m.captured)
	if m.sessionID != "" {
		content += "\n\n" + m.theme.Help.Render("session "+m.sessionID)
	}
	return m.theme.Panel.Width(contextWidth).Render(content)
}

func (m Model) renderHelp() string {
	parts := make([]string, 0, len(m.keymap.ShortHelp()))
	for _, b := range m.keymap.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.theme.Help.Render(strings.Join(parts, " • "))
}
