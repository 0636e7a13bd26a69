package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the key map as a centered modal over a blank screen.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	title := styles.AccentText.Bold(true).Render("switchboard keys")
	body := m.helpModel().View(m.keys)
	footer := styles.FaintText.Render("any key closes · theme " + m.theme.Name)

	panel := styles.Panel.
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", footer))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}
