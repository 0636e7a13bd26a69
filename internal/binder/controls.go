package binder

// Toggle is a two-state control (checkbox).
type Toggle interface {
	Checked() bool
	SetChecked(checked bool)
	OnChange(fn func())
}

// Choice is a selection control over string options.
type Choice interface {
	Selected() string
	SetSelected(value string)
	OnChange(fn func())
}

// Slider is the continuous half of a ranged field. Values are raw strings as
// the control holds them; parsing is the binder's job.
type Slider interface {
	Value() string
	SetValue(raw string)
	OnInput(fn func())
}

// Readout is the numeric text half of a ranged field. OnCommit fires when the
// operator confirms an edit (enter or blur).
type Readout interface {
	Text() string
	SetText(raw string)
	OnCommit(fn func())
}

// Controls resolves a field of a section to the widgets rendering it. A
// missing control is reported with ok=false and the field is skipped.
type Controls interface {
	Toggle(section, key string) (Toggle, bool)
	Choice(section, key string) (Choice, bool)
	Slider(section, key string) (Slider, bool)
	Readout(section, key string) (Readout, bool)
}
