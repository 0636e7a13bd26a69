package binder

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/switchboard/internal/section"
)

type scheduledWrite struct {
	Section string
	Payload map[string]any
	Delay   time.Duration
}

type spyWriter struct {
	writes []scheduledWrite
}

func (w *spyWriter) Schedule(sectionID string, payload map[string]any, delay time.Duration) {
	w.writes = append(w.writes, scheduledWrite{Section: sectionID, Payload: payload, Delay: delay})
}

func testRegistry(t *testing.T) *section.Registry {
	t.Helper()
	reg, err := section.New(
		section.Descriptor{
			ID:       "pipeline",
			Stateful: true,
			Fields: []section.Field{
				{Key: "enabled", Kind: section.Boolean},
				{Key: "mode", Kind: section.Enum, Options: []string{"normal", "fast"}},
				{Key: "window_size", Kind: section.RangedInt, Min: 1, Max: 500},
				{Key: "gain_x", Kind: section.RangedFloat, Min: 0, Max: 10},
			},
		},
		section.Descriptor{ID: "config"},
	)
	if err != nil {
		t.Fatalf("section.New returned error: %v", err)
	}
	return reg
}

func newBound(t *testing.T, opts ...MemoryOption) (*Binder, *Memory, *spyWriter, section.Descriptor) {
	t.Helper()
	reg := testRegistry(t)
	mem := NewMemory(reg, opts...)
	spy := &spyWriter{}
	b := New(mem, spy, 0)
	b.BindAll(reg)
	desc, _ := reg.Lookup("pipeline")
	return b, mem, spy, desc
}

func TestBinder_ToggleWritesImmediately(t *testing.T) {
	_, mem, spy, _ := newBound(t)

	toggle, _ := mem.MemToggle("pipeline", "enabled")
	toggle.Click()

	want := []scheduledWrite{{Section: "pipeline", Payload: map[string]any{"enabled": true}, Delay: 0}}
	if diff := cmp.Diff(want, spy.writes); diff != "" {
		t.Fatalf("writes mismatch (-want +got):\n%s", diff)
	}
}

func TestBinder_ChoiceWritesImmediately(t *testing.T) {
	_, mem, spy, _ := newBound(t)

	choice, _ := mem.MemChoice("pipeline", "mode")
	choice.Select("fast")

	want := []scheduledWrite{{Section: "pipeline", Payload: map[string]any{"mode": "fast"}, Delay: 0}}
	if diff := cmp.Diff(want, spy.writes); diff != "" {
		t.Fatalf("writes mismatch (-want +got):\n%s", diff)
	}
}

func TestBinder_SliderMirrorsAndDebounces(t *testing.T) {
	_, mem, spy, _ := newBound(t)

	slider, _ := mem.MemSlider("pipeline", "window_size")
	readout, _ := mem.MemReadout("pipeline", "window_size")
	slider.Drag("12")

	if readout.Text() != "12" {
		t.Fatalf("readout = %q, want mirrored 12", readout.Text())
	}
	want := []scheduledWrite{{Section: "pipeline", Payload: map[string]any{"window_size": int64(12)}, Delay: DefaultDebounce}}
	if diff := cmp.Diff(want, spy.writes); diff != "" {
		t.Fatalf("writes mismatch (-want +got):\n%s", diff)
	}
}

func TestBinder_ReadoutCommitMirrorsAndWritesImmediately(t *testing.T) {
	_, mem, spy, _ := newBound(t)

	slider, _ := mem.MemSlider("pipeline", "gain_x")
	readout, _ := mem.MemReadout("pipeline", "gain_x")
	readout.Commit("2.5")

	if slider.Value() != "2.5" {
		t.Fatalf("slider = %q, want mirrored 2.5", slider.Value())
	}
	want := []scheduledWrite{{Section: "pipeline", Payload: map[string]any{"gain_x": 2.5}, Delay: 0}}
	if diff := cmp.Diff(want, spy.writes); diff != "" {
		t.Fatalf("writes mismatch (-want +got):\n%s", diff)
	}
}

func TestBinder_UnparsableInputIsDropped(t *testing.T) {
	_, mem, spy, _ := newBound(t)

	readout, _ := mem.MemReadout("pipeline", "window_size")
	readout.Commit("lots")

	if len(spy.writes) != 0 {
		t.Fatalf("writes = %#v, want none for unparsable input", spy.writes)
	}
}

func TestBinder_SuppressedObserversAreNoOps(t *testing.T) {
	b, mem, spy, _ := newBound(t)

	release := b.Suppress()
	if !b.Suppressed() {
		t.Fatalf("Suppressed = false inside scope")
	}
	toggle, _ := mem.MemToggle("pipeline", "enabled")
	toggle.Click()
	slider, _ := mem.MemSlider("pipeline", "window_size")
	readout, _ := mem.MemReadout("pipeline", "window_size")
	slider.Drag("40")
	release()
	release() // second call is ignored

	if b.Suppressed() {
		t.Fatalf("Suppressed = true after release")
	}
	if len(spy.writes) != 0 {
		t.Fatalf("writes = %#v, want none while suppressed", spy.writes)
	}
	if readout.Text() != "40" {
		t.Fatalf("readout = %q, want mirror even while suppressed", readout.Text())
	}
}

func TestBinder_SuppressNests(t *testing.T) {
	b, _, _, _ := newBound(t)

	outer := b.Suppress()
	inner := b.Suppress()
	inner()
	if !b.Suppressed() {
		t.Fatalf("Suppressed = false with outer scope still open")
	}
	outer()
	if b.Suppressed() {
		t.Fatalf("Suppressed = true after both scopes released")
	}
}

func TestBinder_RenderRoundTrip(t *testing.T) {
	b, _, _, desc := newBound(t)

	snap := map[string]any{
		"enabled":     true,
		"mode":        "fast",
		"window_size": json.Number("120"),
		"gain_x":      json.Number("2.75"),
		"connected":   map[string]any{"overall": true},
	}
	b.Render(desc, snap)

	got := b.Read(desc)
	want := map[string]any{
		"enabled":     true,
		"mode":        "fast",
		"window_size": int64(120),
		"gain_x":      2.75,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBinder_RenderSkipsAbsentFields(t *testing.T) {
	b, mem, _, desc := newBound(t)

	choice, _ := mem.MemChoice("pipeline", "mode")
	choice.SetSelected("normal")
	b.Render(desc, map[string]any{"enabled": false})

	if choice.Selected() != "normal" {
		t.Fatalf("mode = %q, want untouched normal", choice.Selected())
	}
}

func TestBinder_RenderWithEchoingControlsUnderSuppression(t *testing.T) {
	b, _, spy, desc := newBound(t, WithEcho())

	func() {
		release := b.Suppress()
		defer release()
		b.Render(desc, map[string]any{
			"enabled":     true,
			"mode":        "fast",
			"window_size": json.Number("7"),
			"gain_x":      json.Number("1.5"),
		})
	}()

	if len(spy.writes) != 0 {
		t.Fatalf("writes = %#v, want none from echoing controls", spy.writes)
	}
}

func TestHandlers_CoverEveryKind(t *testing.T) {
	for _, k := range section.Kinds() {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("handlerFor(%v) panicked: %v", k, r)
				}
			}()
			_ = handlerFor(k)
		}()
	}
}
