package ui

import (
	"math"
	"strconv"
	"strings"

	"github.com/five82/switchboard/internal/binder"
	"github.com/five82/switchboard/internal/section"
)

// Widgets hold their value and a list of observers. Programmatic setters
// never notify; only operator actions (Flip, Cycle, Nudge, Commit) do.

type listeners []func()

func (l listeners) fire() {
	for _, fn := range l {
		fn()
	}
}

// toggleWidget renders a Boolean field.
type toggleWidget struct {
	checked  bool
	onChange listeners
}

var _ binder.Toggle = (*toggleWidget)(nil)

func (w *toggleWidget) Checked() bool           { return w.checked }
func (w *toggleWidget) SetChecked(checked bool) { w.checked = checked }
func (w *toggleWidget) OnChange(fn func())      { w.onChange = append(w.onChange, fn) }

// Flip inverts the toggle as an operator action.
func (w *toggleWidget) Flip() {
	w.checked = !w.checked
	w.onChange.fire()
}

// choiceWidget renders an Enum field. The selected value may be one the
// remote reported that is not among the declared options.
type choiceWidget struct {
	options  []string
	selected string
	onChange listeners
}

var _ binder.Choice = (*choiceWidget)(nil)

func (w *choiceWidget) Selected() string         { return w.selected }
func (w *choiceWidget) SetSelected(value string) { w.selected = value }
func (w *choiceWidget) OnChange(fn func())       { w.onChange = append(w.onChange, fn) }

// Cycle moves the selection by delta options, wrapping at either end.
func (w *choiceWidget) Cycle(delta int) {
	n := len(w.options)
	if n == 0 {
		return
	}
	idx := -1
	for i, opt := range w.options {
		if opt == w.selected {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta >= 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = ((idx+delta)%n + n) % n
	}
	if w.options[idx] == w.selected {
		return
	}
	w.selected = w.options[idx]
	w.onChange.fire()
}

// sliderWidget is the continuous half of a ranged field.
type sliderWidget struct {
	kind     section.Kind
	min, max float64
	step     float64
	value    string
	onInput  listeners
}

var _ binder.Slider = (*sliderWidget)(nil)

func newSlider(f section.Field) *sliderWidget {
	step := f.Step
	if step <= 0 {
		if f.Kind == section.RangedInt {
			step = 1
		} else {
			step = (f.Max - f.Min) / 100
		}
	}
	if step <= 0 {
		step = 1
	}
	return &sliderWidget{kind: f.Kind, min: f.Min, max: f.Max, step: step}
}

func (w *sliderWidget) Value() string       { return w.value }
func (w *sliderWidget) SetValue(raw string) { w.value = raw }
func (w *sliderWidget) OnInput(fn func())   { w.onInput = append(w.onInput, fn) }

// Nudge moves the slider by steps increments, clamped to its range. Each call
// is one input event.
func (w *sliderWidget) Nudge(steps int) {
	current, err := strconv.ParseFloat(strings.TrimSpace(w.value), 64)
	valid := err == nil && !math.IsNaN(current)
	if !valid {
		current = w.min
	}
	next := current + float64(steps)*w.step
	if w.max > w.min {
		next = math.Max(w.min, math.Min(w.max, next))
	}
	// Pinned at a limit.
	if valid && next == current {
		return
	}
	raw := w.format(next)
	if raw == w.value {
		return
	}
	w.value = raw
	w.onInput.fire()
}

// Fraction reports the position of the value within the range, 0 to 1.
func (w *sliderWidget) Fraction() float64 {
	if w.max <= w.min {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(w.value), 64)
	if err != nil {
		return 0
	}
	return math.Max(0, math.Min(1, (v-w.min)/(w.max-w.min)))
}

func (w *sliderWidget) format(v float64) string {
	if w.kind == section.RangedInt {
		return strconv.FormatInt(int64(math.Round(v)), 10)
	}
	// Round to the step's precision so repeated nudges do not accumulate
	// float noise.
	decimals := 0
	for s := w.step; s < 1 && decimals < 6; s *= 10 {
		decimals++
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// readoutWidget is the numeric text half of a ranged field.
type readoutWidget struct {
	text     string
	onCommit listeners
}

var _ binder.Readout = (*readoutWidget)(nil)

func (w *readoutWidget) Text() string       { return w.text }
func (w *readoutWidget) SetText(raw string) { w.text = raw }
func (w *readoutWidget) OnCommit(fn func()) { w.onCommit = append(w.onCommit, fn) }

// Commit confirms typed input as an operator action.
func (w *readoutWidget) Commit(raw string) {
	w.text = strings.TrimSpace(raw)
	w.onCommit.fire()
}
