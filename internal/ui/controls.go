package ui

import (
	"github.com/five82/switchboard/internal/binder"
	"github.com/five82/switchboard/internal/section"
)

type fieldKey struct {
	section string
	key     string
}

// row is one rendered field of a section tab.
type row struct {
	field   section.Field
	toggle  *toggleWidget
	choice  *choiceWidget
	slider  *sliderWidget
	readout *readoutWidget
}

// Controls owns the terminal widgets for every field of a registry and
// resolves them for the binder.
type Controls struct {
	rows map[string][]*row
	idx  map[fieldKey]*row
}

// Ensure Controls implements binder.Controls at compile time.
var _ binder.Controls = (*Controls)(nil)

// NewControls builds one widget set per field, in registry order.
func NewControls(reg *section.Registry) *Controls {
	c := &Controls{
		rows: make(map[string][]*row),
		idx:  make(map[fieldKey]*row),
	}
	for _, desc := range reg.Sections() {
		for _, f := range desc.Fields {
			r := &row{field: f}
			switch f.Kind {
			case section.Boolean:
				r.toggle = &toggleWidget{}
			case section.Enum:
				r.choice = &choiceWidget{options: f.Options}
			case section.RangedInt, section.RangedFloat:
				r.slider = newSlider(f)
				r.readout = &readoutWidget{}
			}
			c.rows[desc.ID] = append(c.rows[desc.ID], r)
			c.idx[fieldKey{desc.ID, f.Key}] = r
		}
	}
	return c
}

// rowsFor returns the field rows of a section.
func (c *Controls) rowsFor(sectionID string) []*row {
	return c.rows[sectionID]
}

func (c *Controls) lookup(sectionID, key string) *row {
	return c.idx[fieldKey{sectionID, key}]
}

// Toggle implements binder.Controls.
func (c *Controls) Toggle(sectionID, key string) (binder.Toggle, bool) {
	if r := c.lookup(sectionID, key); r != nil && r.toggle != nil {
		return r.toggle, true
	}
	return nil, false
}

// Choice implements binder.Controls.
func (c *Controls) Choice(sectionID, key string) (binder.Choice, bool) {
	if r := c.lookup(sectionID, key); r != nil && r.choice != nil {
		return r.choice, true
	}
	return nil, false
}

// Slider implements binder.Controls.
func (c *Controls) Slider(sectionID, key string) (binder.Slider, bool) {
	if r := c.lookup(sectionID, key); r != nil && r.slider != nil {
		return r.slider, true
	}
	return nil, false
}

// Readout implements binder.Controls.
func (c *Controls) Readout(sectionID, key string) (binder.Readout, bool) {
	if r := c.lookup(sectionID, key); r != nil && r.readout != nil {
		return r.readout, true
	}
	return nil, false
}
