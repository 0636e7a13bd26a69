package ui

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/switchboard/internal/section"
)

// cursor returns the clamped cursor row of a section tab.
func (m Model) cursor(sectionID string) int {
	rows := m.controls.rowsFor(sectionID)
	cur := m.cursors[sectionID]
	if cur >= len(rows) {
		cur = len(rows) - 1
	}
	if cur < 0 {
		cur = 0
	}
	return cur
}

// handleSectionKey processes keyboard input on a stateful section tab. Every
// operator action goes through a widget so the binder sees it.
func (m Model) handleSectionKey(msg tea.KeyMsg, sectionID string) (tea.Model, tea.Cmd) {
	rows := m.controls.rowsFor(sectionID)
	if len(rows) == 0 {
		return m, nil
	}
	cur := m.cursor(sectionID)
	r := rows[cur]

	switch {
	case key.Matches(msg, m.keys.Up):
		if cur > 0 {
			m.cursors[sectionID] = cur - 1
		}
	case key.Matches(msg, m.keys.Down):
		if cur < len(rows)-1 {
			m.cursors[sectionID] = cur + 1
		}
	case key.Matches(msg, m.keys.Toggle):
		if r.toggle != nil {
			r.toggle.Flip()
		}
	case key.Matches(msg, m.keys.Decrease):
		r.adjust(-1)
	case key.Matches(msg, m.keys.Increase):
		r.adjust(1)
	case key.Matches(msg, m.keys.DecreaseFast):
		r.adjust(-10)
	case key.Matches(msg, m.keys.IncreaseFast):
		r.adjust(10)
	case key.Matches(msg, m.keys.Edit):
		switch {
		case r.readout != nil:
			return m, m.beginInput(inputReadout, r.readout.Text(), r)
		case r.toggle != nil:
			r.toggle.Flip()
		case r.choice != nil:
			r.choice.Cycle(1)
		}
	}
	return m, nil
}

// adjust applies a left/right action: choices move one option, sliders move
// by steps.
func (r *row) adjust(steps int) {
	switch {
	case r.choice != nil && steps < 0:
		r.choice.Cycle(-1)
	case r.choice != nil:
		r.choice.Cycle(1)
	case r.slider != nil:
		r.slider.Nudge(steps)
	case r.toggle != nil:
		r.toggle.Flip()
	}
}

// renderSection renders the field rows of a stateful section.
func (m Model) renderSection(sectionID string) string {
	styles := m.theme.Styles()
	rows := m.controls.rowsFor(sectionID)
	if len(rows) == 0 {
		return styles.FaintText.Render("  This section has no fields.")
	}

	_, loaded := m.eng.Store().Section(sectionID)
	cur := m.cursor(sectionID)
	compact := m.width < LayoutCompactWidth

	lines := make([]string, 0, len(rows)+2)
	if !loaded {
		lines = append(lines, styles.WarningText.Render("  Waiting for the first snapshot..."), "")
	}
	for i, r := range rows {
		selected := i == cur
		marker := "  "
		if selected {
			marker = "▸ "
		}
		label := padRight(truncate(r.field.DisplayLabel(), labelWidth-1), labelWidth)
		line := marker + label + m.renderControl(r, selected, compact)
		if selected {
			line = styles.Cursor.Width(m.width).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderControl(r *row, selected, compact bool) string {
	styles := m.theme.Styles()
	if selected {
		styles = styles.WithBackground(m.theme.FocusBg)
	}

	switch r.field.Kind {
	case section.Boolean:
		if r.toggle.Checked() {
			return styles.SuccessText.Render("[x] On")
		}
		return styles.MutedText.Render("[ ] Off")

	case section.Enum:
		value := r.choice.Selected()
		if value == "" {
			return styles.FaintText.Render("‹ -- ›")
		}
		valueStyle := styles.AccentText
		position := ""
		if idx := slices.Index(r.choice.options, value); idx >= 0 {
			position = fmt.Sprintf(" %d/%d", idx+1, len(r.choice.options))
		} else {
			valueStyle = styles.WarningText
		}
		return valueStyle.Render("‹ "+value+" ›") + styles.FaintText.Render(position)

	default:
		width := trackWidth
		if compact {
			width = compactTrack
		}
		track := renderTrack(r.slider.Fraction(), width, styles)
		var readout string
		switch {
		case m.mode == inputReadout && m.editRow == r:
			readout = m.input.View()
		case r.readout.Text() == "":
			readout = styles.FaintText.Render("--")
		default:
			readout = styles.Text.Render(truncate(r.readout.Text(), readoutMaxChars))
		}
		bounds := ""
		if !compact && r.field.Max > r.field.Min {
			bounds = styles.FaintText.Render(fmt.Sprintf("  %s..%s",
				section.Format(r.field.Min), section.Format(r.field.Max)))
		}
		return track + "  " + readout + bounds
	}
}

// renderTrack draws a horizontal slider track filled to fraction.
func renderTrack(fraction float64, width int, styles Styles) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(fraction * float64(width)))
	filled = max(0, min(width, filled))
	return styles.TrackFill.Render(strings.Repeat("━", filled)) +
		styles.TrackEmpty.Render(strings.Repeat("─", width-filled))
}
