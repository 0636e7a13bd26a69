package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// band renders segments on one background color. Lipgloss resets the
// background after every styled segment, so gaps and punctuation between
// segments are styled as well.
type band struct {
	bg lipgloss.Style
}

func newBand(color string) band {
	return band{bg: lipgloss.NewStyle().Background(lipgloss.Color(color))}
}

// text renders s in style on the band. Words are styled one by one so the
// spaces between them keep the background.
func (b band) text(s string, style lipgloss.Style) string {
	if s == "" {
		return ""
	}
	style = style.Background(b.bg.GetBackground())
	words := strings.Split(s, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.gap(1))
}

// plain renders s on the band without foreground styling.
func (b band) plain(s string) string {
	return b.bg.Render(s)
}

func (b band) gap(n int) string {
	if n <= 0 {
		return ""
	}
	return b.bg.Render(strings.Repeat(" ", n))
}

// join places parts side by side with n styled spaces between them.
func (b band) join(parts []string, n int) string {
	return strings.Join(parts, b.gap(n))
}

// fill pads rendered content to width with the band color.
func (b band) fill(content string, width int) string {
	return b.bg.Width(width).Render(content)
}
