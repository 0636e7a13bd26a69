package ui

import (
	"testing"

	"github.com/five82/switchboard/internal/section"
)

func counter(n *int) func() {
	return func() { *n++ }
}

func TestToggleWidget_SetterIsSilent(t *testing.T) {
	var fired int
	w := &toggleWidget{}
	w.OnChange(counter(&fired))

	w.SetChecked(true)
	if fired != 0 {
		t.Fatalf("SetChecked fired %d observers, want 0", fired)
	}
	w.Flip()
	if w.Checked() || fired != 1 {
		t.Fatalf("after Flip: checked=%v fired=%d, want false/1", w.Checked(), fired)
	}
}

func TestChoiceWidget_CycleWraps(t *testing.T) {
	var fired int
	w := &choiceWidget{options: []string{"normal", "fast", "precise"}}
	w.OnChange(counter(&fired))
	w.SetSelected("precise")

	w.Cycle(1)
	if w.Selected() != "normal" {
		t.Fatalf("Cycle(1) from last = %q, want normal", w.Selected())
	}
	w.Cycle(-1)
	if w.Selected() != "precise" {
		t.Fatalf("Cycle(-1) from first = %q, want precise", w.Selected())
	}
	if fired != 2 {
		t.Fatalf("fired = %d, want 2", fired)
	}
}

func TestChoiceWidget_UnknownValue(t *testing.T) {
	w := &choiceWidget{options: []string{"a", "b", "c"}}

	w.SetSelected("legacy")
	w.Cycle(1)
	if w.Selected() != "a" {
		t.Fatalf("Cycle(1) from unknown = %q, want a", w.Selected())
	}
	w.SetSelected("legacy")
	w.Cycle(-1)
	if w.Selected() != "c" {
		t.Fatalf("Cycle(-1) from unknown = %q, want c", w.Selected())
	}
}

func TestChoiceWidget_SingleOptionDoesNotFire(t *testing.T) {
	var fired int
	w := &choiceWidget{options: []string{"only"}}
	w.OnChange(counter(&fired))
	w.SetSelected("only")

	w.Cycle(1)
	if fired != 0 {
		t.Fatalf("fired = %d cycling a single option, want 0", fired)
	}
}

func TestSliderWidget_NudgeInt(t *testing.T) {
	var fired int
	w := newSlider(section.Field{Key: "n", Kind: section.RangedInt, Min: 1, Max: 10})
	w.OnInput(counter(&fired))
	w.SetValue("9")

	w.Nudge(1)
	if w.Value() != "10" {
		t.Fatalf("Nudge(1) = %q, want 10", w.Value())
	}
	w.Nudge(5)
	if w.Value() != "10" || fired != 1 {
		t.Fatalf("Nudge past max: value=%q fired=%d, want 10/1", w.Value(), fired)
	}
	w.Nudge(-20)
	if w.Value() != "1" {
		t.Fatalf("Nudge(-20) = %q, want clamped 1", w.Value())
	}
}

func TestSliderWidget_NudgeFloatUsesStepPrecision(t *testing.T) {
	w := newSlider(section.Field{Key: "d", Kind: section.RangedFloat, Min: 0, Max: 1, Step: 0.01})
	w.SetValue("0.5")

	w.Nudge(1)
	if w.Value() != "0.51" {
		t.Fatalf("Nudge(1) = %q, want 0.51", w.Value())
	}
	w.Nudge(-10)
	if w.Value() != "0.41" {
		t.Fatalf("Nudge(-10) = %q, want 0.41", w.Value())
	}
}

func TestSliderWidget_AtLimitDoesNotReformat(t *testing.T) {
	var fired int
	w := newSlider(section.Field{Key: "g", Kind: section.RangedFloat, Min: 0, Max: 1, Step: 0.1})
	w.OnInput(counter(&fired))
	w.SetValue("1")

	w.Nudge(1)
	if w.Value() != "1" || fired != 0 {
		t.Fatalf("Nudge at max: value=%q fired=%d, want 1/0", w.Value(), fired)
	}
}

func TestSliderWidget_EmptyStartsAtMin(t *testing.T) {
	w := newSlider(section.Field{Key: "n", Kind: section.RangedInt, Min: 4, Max: 8})

	w.Nudge(1)
	if w.Value() != "5" {
		t.Fatalf("Nudge(1) from empty = %q, want 5", w.Value())
	}
}

func TestSliderWidget_DefaultFloatStep(t *testing.T) {
	w := newSlider(section.Field{Key: "g", Kind: section.RangedFloat, Min: 0, Max: 10})
	if w.step != 0.1 {
		t.Fatalf("step = %v, want 0.1", w.step)
	}
}

func TestSliderWidget_Fraction(t *testing.T) {
	tests := []struct {
		value string
		want  float64
	}{
		{"0", 0},
		{"50", 0.5},
		{"100", 1},
		{"150", 1},
		{"", 0},
	}
	w := newSlider(section.Field{Key: "p", Kind: section.RangedInt, Min: 0, Max: 100})
	for _, tt := range tests {
		w.SetValue(tt.value)
		if got := w.Fraction(); got != tt.want {
			t.Fatalf("Fraction(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestReadoutWidget_CommitTrims(t *testing.T) {
	var fired int
	w := &readoutWidget{}
	w.OnCommit(counter(&fired))

	w.SetText("3")
	w.Commit("  12 ")
	if w.Text() != "12" || fired != 1 {
		t.Fatalf("after Commit: text=%q fired=%d, want 12/1", w.Text(), fired)
	}
}

func TestNewControls_OneWidgetSetPerKind(t *testing.T) {
	c := NewControls(testRegistry(t))

	if _, ok := c.Toggle("pipeline", "enabled"); !ok {
		t.Fatalf("Toggle(pipeline, enabled) missing")
	}
	if _, ok := c.Choice("pipeline", "mode"); !ok {
		t.Fatalf("Choice(pipeline, mode) missing")
	}
	if _, ok := c.Slider("pipeline", "window_size"); !ok {
		t.Fatalf("Slider(pipeline, window_size) missing")
	}
	if _, ok := c.Readout("pipeline", "gain_x"); !ok {
		t.Fatalf("Readout(pipeline, gain_x) missing")
	}
	if _, ok := c.Toggle("pipeline", "mode"); ok {
		t.Fatalf("Toggle(pipeline, mode) found, want none for an enum field")
	}
	if _, ok := c.Slider("missing", "x"); ok {
		t.Fatalf("Slider(missing, x) found, want none")
	}
	if got := len(c.rowsFor("pipeline")); got != 4 {
		t.Fatalf("rowsFor(pipeline) = %d rows, want 4", got)
	}
}
