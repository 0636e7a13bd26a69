package binder

import (
	"sync"

	"github.com/five82/switchboard/internal/section"
)

// Memory is a Controls implementation that keeps values in memory. Headless
// sessions and CLI subcommands render into it; tests drive it as a fake UI.
//
// Programmatic setters do not notify observers unless WithEcho is used, which
// models toolkits that fire change events when a programmatic update changes
// the value.
type Memory struct {
	mu       sync.Mutex
	echo     bool
	toggles  map[fieldRef]*MemToggle
	choices  map[fieldRef]*MemChoice
	sliders  map[fieldRef]*MemSlider
	readouts map[fieldRef]*MemReadout
}

type fieldRef struct {
	section string
	key     string
}

// Ensure Memory implements Controls at compile time.
var _ Controls = (*Memory)(nil)

// MemoryOption configures a Memory.
type MemoryOption func(*Memory)

// WithEcho makes programmatic setters notify observers.
func WithEcho() MemoryOption {
	return func(m *Memory) { m.echo = true }
}

// NewMemory creates controls for every field of every section in reg.
func NewMemory(reg *section.Registry, opts ...MemoryOption) *Memory {
	m := &Memory{
		toggles:  make(map[fieldRef]*MemToggle),
		choices:  make(map[fieldRef]*MemChoice),
		sliders:  make(map[fieldRef]*MemSlider),
		readouts: make(map[fieldRef]*MemReadout),
	}
	for _, opt := range opts {
		opt(m)
	}
	for _, desc := range reg.Sections() {
		for _, f := range desc.Fields {
			ref := fieldRef{section: desc.ID, key: f.Key}
			switch f.Kind {
			case section.Boolean:
				m.toggles[ref] = &MemToggle{echo: m.echo}
			case section.Enum:
				m.choices[ref] = &MemChoice{echo: m.echo}
			case section.RangedInt, section.RangedFloat:
				m.sliders[ref] = &MemSlider{echo: m.echo}
				m.readouts[ref] = &MemReadout{echo: m.echo}
			}
		}
	}
	return m
}

// Toggle implements Controls.
func (m *Memory) Toggle(sectionID, key string) (Toggle, bool) {
	t, ok := m.MemToggle(sectionID, key)
	if !ok {
		return nil, false
	}
	return t, true
}

// Choice implements Controls.
func (m *Memory) Choice(sectionID, key string) (Choice, bool) {
	c, ok := m.MemChoice(sectionID, key)
	if !ok {
		return nil, false
	}
	return c, true
}

// Slider implements Controls.
func (m *Memory) Slider(sectionID, key string) (Slider, bool) {
	s, ok := m.MemSlider(sectionID, key)
	if !ok {
		return nil, false
	}
	return s, true
}

// Readout implements Controls.
func (m *Memory) Readout(sectionID, key string) (Readout, bool) {
	r, ok := m.MemReadout(sectionID, key)
	if !ok {
		return nil, false
	}
	return r, true
}

// MemToggle returns the concrete toggle for simulating input.
func (m *Memory) MemToggle(sectionID, key string) (*MemToggle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.toggles[fieldRef{sectionID, key}]
	return t, ok
}

// MemChoice returns the concrete choice for simulating input.
func (m *Memory) MemChoice(sectionID, key string) (*MemChoice, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.choices[fieldRef{sectionID, key}]
	return c, ok
}

// MemSlider returns the concrete slider for simulating input.
func (m *Memory) MemSlider(sectionID, key string) (*MemSlider, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sliders[fieldRef{sectionID, key}]
	return s, ok
}

// MemReadout returns the concrete readout for simulating input.
func (m *Memory) MemReadout(sectionID, key string) (*MemReadout, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.readouts[fieldRef{sectionID, key}]
	return r, ok
}

type observers struct {
	fns []func()
}

func (o *observers) add(fn func()) { o.fns = append(o.fns, fn) }

func (o *observers) fire() {
	for _, fn := range o.fns {
		fn()
	}
}

// MemToggle is an in-memory Toggle.
type MemToggle struct {
	checked bool
	echo    bool
	obs     observers
}

func (t *MemToggle) Checked() bool      { return t.checked }
func (t *MemToggle) OnChange(fn func()) { t.obs.add(fn) }

func (t *MemToggle) SetChecked(checked bool) {
	changed := t.checked != checked
	t.checked = checked
	if t.echo && changed {
		t.obs.fire()
	}
}

// Click simulates the operator flipping the toggle.
func (t *MemToggle) Click() {
	t.checked = !t.checked
	t.obs.fire()
}

// MemChoice is an in-memory Choice.
type MemChoice struct {
	selected string
	echo     bool
	obs      observers
}

func (c *MemChoice) Selected() string   { return c.selected }
func (c *MemChoice) OnChange(fn func()) { c.obs.add(fn) }

func (c *MemChoice) SetSelected(value string) {
	changed := c.selected != value
	c.selected = value
	if c.echo && changed {
		c.obs.fire()
	}
}

// Select simulates the operator picking value.
func (c *MemChoice) Select(value string) {
	c.selected = value
	c.obs.fire()
}

// MemSlider is an in-memory Slider.
type MemSlider struct {
	value string
	echo  bool
	obs   observers
}

func (s *MemSlider) Value() string     { return s.value }
func (s *MemSlider) OnInput(fn func()) { s.obs.add(fn) }

func (s *MemSlider) SetValue(raw string) {
	changed := s.value != raw
	s.value = raw
	if s.echo && changed {
		s.obs.fire()
	}
}

// Drag simulates one input event moving the slider to raw.
func (s *MemSlider) Drag(raw string) {
	s.value = raw
	s.obs.fire()
}

// MemReadout is an in-memory Readout.
type MemReadout struct {
	text string
	echo bool
	obs  observers
}

func (r *MemReadout) Text() string       { return r.text }
func (r *MemReadout) OnCommit(fn func()) { r.obs.add(fn) }

func (r *MemReadout) SetText(raw string) {
	changed := r.text != raw
	r.text = raw
	if r.echo && changed {
		r.obs.fire()
	}
}

// Commit simulates the operator typing raw and confirming it.
func (r *MemReadout) Commit(raw string) {
	r.text = raw
	r.obs.fire()
}
