package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/switchboard/internal/logtail"
)

// logLevels is the cycle of minimum levels for the logs tab. Empty shows
// everything.
var logLevels = []string{"", "INFO", "WARN", "ERROR"}

// logsState holds the logs tab: a follower on the session log file and the
// viewport showing it.
type logsState struct {
	follower *logtail.Follower
	viewport viewport.Model
	lines    []string
	minLevel string
	follow   bool
	polling  bool
	err      error
}

func newLogsState(path string) logsState {
	s := logsState{
		viewport: viewport.New(0, 0),
		follow:   true,
	}
	if path = strings.TrimSpace(path); path != "" {
		s.follower = logtail.NewFollower(path, LogBufferLimit)
	}
	return s
}

type logLinesMsg struct {
	lines []string
	err   error
}

func pollLogsCmd(f *logtail.Follower) tea.Cmd {
	return func() tea.Msg {
		lines, err := f.Poll()
		return logLinesMsg{lines: lines, err: err}
	}
}

// pollLogs starts a read of the log file when the logs tab is visible. At
// most one read is outstanding; the follower is not safe for concurrent use.
func (m *Model) pollLogs() tea.Cmd {
	if m.logs.follower == nil || m.logs.polling || m.currentTab().kind != tabLogs {
		return nil
	}
	m.logs.polling = true
	return pollLogsCmd(m.logs.follower)
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	m.logs.polling = false
	if msg.err != nil {
		m.logs.err = msg.err
		return
	}
	m.logs.err = nil
	m.logs.lines = msg.lines
	m.refreshLogView()
}

func (m *Model) resizeLogs() {
	m.logs.viewport.Width = m.width
	// One line is the logs tab status line.
	m.logs.viewport.Height = max(1, m.contentHeight()-1)
	m.refreshLogView()
}

// refreshLogView re-renders the filtered lines into the viewport.
func (m *Model) refreshLogView() {
	styles := m.theme.Styles()
	out := make([]string, 0, len(m.logs.lines))
	for _, line := range m.logs.lines {
		entry := logtail.Parse(line)
		if !entry.AtLeast(m.logs.minLevel) {
			continue
		}
		out = append(out, formatEntry(entry, styles))
	}
	m.logs.viewport.SetContent(strings.Join(out, "\n"))
	if m.logs.follow {
		m.logs.viewport.GotoBottom()
	}
}

// formatEntry colors one parsed log line by level.
func formatEntry(e logtail.Entry, styles Styles) string {
	if e.Level == "" {
		return styles.Text.Render(e.Message)
	}
	levelStyle := styles.Text
	switch e.Level {
	case "DEBUG":
		levelStyle = styles.FaintText
	case "INFO":
		levelStyle = styles.InfoText
	case "WARN":
		levelStyle = styles.WarningText
	default:
		levelStyle = styles.DangerText
	}

	parts := []string{
		styles.FaintText.Render(e.Time),
		levelStyle.Render(padRight(e.Level, 5)),
	}
	if e.Logger != "" {
		parts = append(parts, styles.AccentText.Render("["+e.Logger+"]"))
	}
	parts = append(parts, styles.Text.Render(e.Message))
	if e.Fields != "" {
		parts = append(parts, styles.FaintText.Render(e.Fields))
	}
	return strings.Join(parts, " ")
}

// handleLogsKey processes keyboard input on the logs tab.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logs.follow = !m.logs.follow
		if m.logs.follow {
			m.logs.viewport.GotoBottom()
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleLevel):
		for i, level := range logLevels {
			if level == m.logs.minLevel {
				m.logs.minLevel = logLevels[(i+1)%len(logLevels)]
				break
			}
		}
		m.refreshLogView()
		return m, nil
	}

	// Scrolling back pauses follow mode.
	if key.Matches(msg, m.keys.Up) {
		m.logs.follow = false
	}
	var cmd tea.Cmd
	m.logs.viewport, cmd = m.logs.viewport.Update(msg)
	return m, cmd
}

// renderLogs renders the logs tab.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	if m.logs.follower == nil {
		return styles.FaintText.Render("  Logging is off. Set log_level (or SWITCHBOARD_LOG_LEVEL) to see the session log here.")
	}

	level := m.logs.minLevel
	if level == "" {
		level = "ALL"
	}
	follow := "paused"
	if m.logs.follow {
		follow = "following"
	}
	status := []string{
		styles.MutedText.Render(truncate(m.logs.follower.Path(), 60)),
		styles.AccentText.Render("level " + level),
		styles.InfoText.Render(follow),
	}
	if m.logs.err != nil {
		status = append(status, styles.DangerText.Render(truncate(m.logs.err.Error(), 60)))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(status, "  "),
		m.logs.viewport.View(),
	)
}
