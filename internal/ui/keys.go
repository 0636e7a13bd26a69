package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	JumpTab    key.Binding
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Logs       key.Binding
	Sync       key.Binding
	Escape     key.Binding

	// Navigation
	Up   key.Binding
	Down key.Binding

	// Field editing
	Toggle       key.Binding
	Decrease     key.Binding
	Increase     key.Binding
	DecreaseFast key.Binding
	IncreaseFast key.Binding
	Edit         key.Binding

	// Profiles
	LoadProfile     key.Binding
	NewProfile      key.Binding
	RefreshProfiles key.Binding

	// Logs
	ToggleFollow key.Binding
	CycleLevel   key.Binding

	// Input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		JumpTab: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "Jump to tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous tab"),
		),
		Logs: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "Logs tab"),
		),
		Sync: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Save working config"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),

		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Flip toggle"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Decrease / previous option"),
		),
		Increase: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Increase / next option"),
		),
		DecreaseFast: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H", "Decrease x10"),
		),
		IncreaseFast: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L", "Increase x10"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "Type a value"),
		),

		LoadProfile: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Load config"),
		),
		NewProfile: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Save as new config"),
		),
		RefreshProfiles: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh configs"),
		),

		ToggleFollow: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Toggle follow"),
		),
		CycleLevel: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Cycle level filter"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.JumpTab, k.Logs, k.Up, k.Down},
		{k.Toggle, k.Decrease, k.Increase, k.DecreaseFast, k.IncreaseFast, k.Edit},
		{k.LoadProfile, k.NewProfile, k.RefreshProfiles, k.Sync},
		{k.ToggleFollow, k.CycleLevel, k.CycleTheme, k.Help, k.Quit},
	}
}
