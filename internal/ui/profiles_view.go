package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/switchboard/internal/engine"
)

// handleProfilesKey processes keyboard input on the config tab.
func (m Model) handleProfilesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.eng.Profiles()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveProfile(p, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveProfile(p, 1)
	case key.Matches(msg, m.keys.LoadProfile):
		// A blank selection only sets the status line.
		_ = m.eng.LoadProfile(m.ctx, p.Selected)
	case key.Matches(msg, m.keys.NewProfile):
		return m, m.beginInput(inputProfileName, p.NameInput, nil)
	case key.Matches(msg, m.keys.RefreshProfiles):
		m.eng.RefreshProfiles(m.ctx)
	}
	return m, nil
}

func (m *Model) moveProfile(p engine.Profiles, delta int) {
	if len(p.Names) == 0 {
		return
	}
	idx := slices.Index(p.Names, p.Selected) + delta
	idx = max(0, min(len(p.Names)-1, idx))
	name := p.Names[idx]
	if name == p.Selected {
		return
	}
	m.eng.SelectProfile(name)
	m.prefs.LastProfile = name
	m.savePrefs()
}

// rememberProfile copies a selection the engine made on its own, such as
// the name of a newly saved config, into prefs.
func (m *Model) rememberProfile() {
	name := m.eng.Profiles().Selected
	if name == "" || name == m.prefs.LastProfile {
		return
	}
	m.prefs.LastProfile = name
	m.savePrefs()
}

// renderProfiles renders the profile manager.
func (m Model) renderProfiles() string {
	styles := m.theme.Styles()
	p := m.eng.Profiles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Saved configs"))
	b.WriteString("\n")

	if len(p.Names) == 0 {
		b.WriteString(styles.FaintText.Render("  No saved configs."))
		b.WriteString("\n")
	}
	// Leave room for the name, status and sync lines below the list.
	visible := max(1, m.contentHeight()-8)
	start := 0
	if idx := slices.Index(p.Names, p.Selected); idx >= visible {
		start = idx - visible + 1
	}
	for i := start; i < len(p.Names) && i < start+visible; i++ {
		name := p.Names[i]
		if name == p.Selected {
			b.WriteString(styles.Cursor.Width(max(0, m.width)).Render("▸ " + name))
		} else {
			b.WriteString("  " + styles.Text.Render(name))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("New config name: "))
	switch {
	case m.mode == inputProfileName:
		b.WriteString(m.input.View())
	case p.NameInput != "":
		b.WriteString(styles.Text.Render(p.NameInput))
	default:
		b.WriteString(styles.FaintText.Render("press n to name one"))
	}
	b.WriteString("\n")

	if p.Status.Text != "" {
		statusStyle := styles.MutedText
		if p.Status.IsError {
			statusStyle = styles.DangerText
		}
		b.WriteString(statusStyle.Render(p.Status.Text))
	}
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Render("Working config: "))
	b.WriteString(m.syncBadge(p.SyncLabel, styles))
	b.WriteString(styles.FaintText.Render("  press S to save it"))
	return b.String()
}

// syncBadge renders the transient sync label.
func (m Model) syncBadge(label string, styles Styles) string {
	switch label {
	case engine.SyncOK:
		return styles.SuccessText.Render("[" + label + "]")
	case engine.SyncFailed:
		return styles.DangerText.Render("[" + label + "]")
	default:
		return styles.AccentText.Render("[" + label + "]")
	}
}
