package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/switchboard/internal/state"
)

// renderHeader renders the status bar: version, connectivity, pending writes
// and the sync label.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBand(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	conn := m.eng.Connectivity()
	parts := []string{bg.text("switchboard", styles.Logo)}

	version := m.eng.Store().Version()
	if version == "" {
		version = "connecting..."
	}
	parts = append(parts, bg.text(version, styles.MutedText))
	parts = append(parts, m.connectivityBadge(conn, styles, bg))

	if detail := connectivityDetail(conn, compact); detail != "" {
		parts = append(parts, bg.text(detail, styles.DangerText))
	}

	if pending := m.eng.PendingWrites(); pending > 0 {
		parts = append(parts,
			bg.text("Pending:", styles.MutedText)+bg.gap(1)+
				bg.text(fmt.Sprintf("%d", pending), styles.InfoText))
	}

	p := m.eng.Profiles()
	parts = append(parts, m.syncBadge(p.SyncLabel, styles))

	if ts := formatUpdated(conn.LastUpdated, m.now); ts != "" {
		parts = append(parts, bg.text(ts, styles.FaintText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(bg.join(parts, 2))
}

func (m Model) connectivityBadge(conn state.Connectivity, styles Styles, bg band) string {
	if conn.Online {
		return bg.text("● Online", styles.SuccessText)
	}
	return bg.text("● Offline", styles.DangerText)
}

// connectivityDetail explains an offline indicator.
func connectivityDetail(conn state.Connectivity, compact bool) string {
	if conn.Online {
		return ""
	}
	var detail string
	switch {
	case len(conn.FailingSections) > 0:
		detail = "fetch failed: " + strings.Join(conn.FailingSections, ", ")
		if conn.ConsecutiveFailures > 1 {
			detail += fmt.Sprintf(" (%d polls)", conn.ConsecutiveFailures)
		}
	case conn.RemoteReported && !conn.RemoteOverall:
		detail = "remote reports disconnected"
	}
	limit := 60
	if compact {
		limit = 30
	}
	return truncate(detail, limit)
}

// formatUpdated formats the last update time with a relative indicator.
func formatUpdated(updated, now time.Time) string {
	if updated.IsZero() {
		return ""
	}
	since := now.Sub(updated)
	ts := updated.Format("15:04:05")
	switch {
	case since < time.Minute:
		return ts
	case since < time.Hour:
		return ts + fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	default:
		return ts + fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
}

// renderTabs renders the tab strip.
func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	bg := newBand(m.theme.SurfaceAlt)

	segments := make([]string, 0, len(m.tabs))
	for i, t := range m.tabs {
		label := fmt.Sprintf("%d %s", i+1, t.title)
		if t.kind == tabLogs {
			label = "0 " + t.title
		}
		if i == m.active {
			segments = append(segments, styles.ActiveTab.Render(label))
		} else {
			segments = append(segments, styles.InactiveTab.Render(label))
		}
	}
	return bg.fill(bg.join(segments, 1), m.width)
}

// renderCommandBar renders the key hints for the active tab.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBand(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	t := m.currentTab()
	switch {
	case m.mode != inputNone:
		commands = []cmd{
			{"enter", "Confirm"},
			{"esc", "Cancel"},
		}
	case t.kind == tabLogs:
		followLabel := "Pause"
		if !m.logs.follow {
			followLabel = "Follow"
		}
		commands = []cmd{
			{"f", followLabel},
			{"v", "Level"},
			{"j/k", "Scroll"},
			{"tab", "Next tab"},
			{"?", "More"},
		}
	case t.static:
		commands = []cmd{
			{"j/k", "Select"},
			{"enter", "Load"},
			{"n", "Save new"},
			{"r", "Refresh"},
			{"S", "Sync"},
			{"tab", "Next tab"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"j/k", "Field"},
			{"space", "Toggle"},
			{"h/l", "Adjust"},
			{"H/L", "x10"},
			{"enter", "Type"},
			{"S", "Sync"},
			{"tab", "Next tab"},
			{"?", "More"},
		}
	}

	colon := bg.plain(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.text(c.key, styles.AccentText)+colon+bg.text(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.text("T", styles.AccentText)+colon+bg.text(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.join(segments, 2))
}
