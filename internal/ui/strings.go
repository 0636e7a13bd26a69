package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// truncate trims value and cuts it to limit display cells, marking the cut
// with an ellipsis. A non-positive limit disables the cut.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || ansi.StringWidth(value) <= limit {
		return value
	}
	return ansi.Truncate(value, limit, "…")
}

// padRight pads s with spaces to width display cells.
func padRight(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
