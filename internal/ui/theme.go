package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and command bar
	SurfaceAlt string // Tab strip and inactive tabs
	FocusBg    string // Field row under the cursor

	// Border colors
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Slider track
	TrackFill  string
	TrackEmpty string
}

// Styles builds the Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	onSurface := lipgloss.NewStyle().
		Background(lipgloss.Color(t.Surface)).
		Foreground(lipgloss.Color(t.Text))

	return Styles{
		Background: lipgloss.NewStyle().Background(lipgloss.Color(t.Background)),
		Surface:    onSurface,

		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: onSurface.Padding(0, 1),
		Logo:   fg(t.Accent).Bold(true),
		ActiveTab: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Accent)).
			Foreground(lipgloss.Color(t.Background)).
			Bold(true).
			Padding(0, 1),
		InactiveTab: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Cursor: lipgloss.NewStyle().
			Background(lipgloss.Color(t.FocusBg)).
			Foreground(lipgloss.Color(t.Text)),
		TrackFill:  fg(t.TrackFill),
		TrackEmpty: fg(t.TrackEmpty),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Base
	Background lipgloss.Style
	Surface    lipgloss.Style

	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header      lipgloss.Style
	Logo        lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Cursor      lipgloss.Style
	TrackFill   lipgloss.Style
	TrackEmpty  lipgloss.Style
	Panel       lipgloss.Style
}

// WithBackground returns a copy of Styles with all text styles having the
// specified background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)

	out := s
	out.Background = s.Background.Background(bg)
	out.Surface = s.Surface.Background(bg)
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.InfoText = s.InfoText.Background(bg)
	out.Header = s.Header.Background(bg)
	out.Logo = s.Logo.Background(bg)
	out.TrackFill = s.TrackFill.Background(bg)
	out.TrackEmpty = s.TrackEmpty.Background(bg)
	return out
}

// themes is the cycle order of the built-in palettes. The first entry is
// the fallback for unknown names.
var themes = []Theme{
	{
		// https://draculatheme.com
		Name:        "Dracula",
		Background:  "#1e1f29",
		Surface:     "#282a36",
		SurfaceAlt:  "#313442",
		FocusBg:     "#44475a",
		Border:      "#44475a",
		BorderFocus: "#ff79c6",
		Text:        "#f8f8f2",
		Muted:       "#9ea8c7",
		Faint:       "#6272a4",
		Accent:      "#bd93f9",
		Success:     "#50fa7b",
		Warning:     "#ffb86c",
		Danger:      "#ff5555",
		Info:        "#8be9fd",
		TrackFill:   "#ff79c6",
		TrackEmpty:  "#3a3c4e",
	},
	{
		// https://www.nordtheme.com/docs/colors-and-palettes
		Name:        "Nord",
		Background:  "#242933",
		Surface:     "#2e3440",
		SurfaceAlt:  "#3b4252",
		FocusBg:     "#434c5e",
		Border:      "#4c566a",
		BorderFocus: "#88c0d0",
		Text:        "#eceff4",
		Muted:       "#d8dee9",
		Faint:       "#7b88a1",
		Accent:      "#88c0d0",
		Success:     "#a3be8c",
		Warning:     "#ebcb8b",
		Danger:      "#bf616a",
		Info:        "#81a1c1",
		TrackFill:   "#b48ead",
		TrackEmpty:  "#4c566a",
	},
	{
		// https://github.com/morhetz/gruvbox
		Name:        "Gruvbox",
		Background:  "#1d2021",
		Surface:     "#282828",
		SurfaceAlt:  "#3c3836",
		FocusBg:     "#504945",
		Border:      "#665c54",
		BorderFocus: "#fabd2f",
		Text:        "#ebdbb2",
		Muted:       "#a89984",
		Faint:       "#928374",
		Accent:      "#fe8019",
		Success:     "#b8bb26",
		Warning:     "#fabd2f",
		Danger:      "#fb4934",
		Info:        "#83a598",
		TrackFill:   "#8ec07c",
		TrackEmpty:  "#504945",
	},
}

// GetTheme returns the named theme, or the first one when the name is
// unknown.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the theme after current, wrapping around.
func NextTheme(current string) string {
	for i, t := range themes {
		if t.Name == current {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}

// ThemeNames lists the built-in themes in cycle order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
