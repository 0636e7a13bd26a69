package binder

import (
	"time"

	"go.uber.org/zap"

	"github.com/five82/switchboard/internal/section"
)

// handler implements one field kind: how its controls are observed, how a
// remote value is rendered into them and how they are read back.
type handler interface {
	bind(b *Binder, sectionID string, f section.Field)
	render(b *Binder, sectionID string, f section.Field, v any)
	read(b *Binder, sectionID string, f section.Field) (any, bool)
}

var handlers = [...]handler{
	section.Boolean:     toggleHandler{},
	section.Enum:        choiceHandler{},
	section.RangedInt:   rangedHandler{},
	section.RangedFloat: rangedHandler{},
}

func handlerFor(k section.Kind) handler {
	if !k.Valid() || int(k) >= len(handlers) || handlers[k] == nil {
		panic("binder: no handler for field kind " + k.String())
	}
	return handlers[k]
}

type toggleHandler struct{}

func (toggleHandler) bind(b *Binder, sectionID string, f section.Field) {
	ctl, ok := b.controls.Toggle(sectionID, f.Key)
	if !ok {
		return
	}
	ctl.OnChange(func() {
		if b.Suppressed() {
			return
		}
		b.write(sectionID, f.Key, ctl.Checked(), 0)
	})
}

func (toggleHandler) render(b *Binder, sectionID string, f section.Field, v any) {
	if ctl, ok := b.controls.Toggle(sectionID, f.Key); ok {
		ctl.SetChecked(section.Truthy(v))
	}
}

func (toggleHandler) read(b *Binder, sectionID string, f section.Field) (any, bool) {
	ctl, ok := b.controls.Toggle(sectionID, f.Key)
	if !ok {
		return nil, false
	}
	return ctl.Checked(), true
}

type choiceHandler struct{}

func (choiceHandler) bind(b *Binder, sectionID string, f section.Field) {
	ctl, ok := b.controls.Choice(sectionID, f.Key)
	if !ok {
		return
	}
	ctl.OnChange(func() {
		if b.Suppressed() {
			return
		}
		b.write(sectionID, f.Key, ctl.Selected(), 0)
	})
}

func (choiceHandler) render(b *Binder, sectionID string, f section.Field, v any) {
	if ctl, ok := b.controls.Choice(sectionID, f.Key); ok {
		ctl.SetSelected(section.Format(v))
	}
}

func (choiceHandler) read(b *Binder, sectionID string, f section.Field) (any, bool) {
	ctl, ok := b.controls.Choice(sectionID, f.Key)
	if !ok {
		return nil, false
	}
	return ctl.Selected(), true
}

// rangedHandler serves both RangedInt and RangedFloat; the field's kind picks
// the parser.
type rangedHandler struct{}

func (rangedHandler) bind(b *Binder, sectionID string, f section.Field) {
	slider, hasSlider := b.controls.Slider(sectionID, f.Key)
	readout, hasReadout := b.controls.Readout(sectionID, f.Key)

	if hasSlider {
		slider.OnInput(func() {
			raw := slider.Value()
			// The readout mirrors the slider even while suppressed.
			if hasReadout {
				readout.SetText(raw)
			}
			if b.Suppressed() {
				return
			}
			b.writeParsed(sectionID, f, raw, b.debounce)
		})
	}
	if hasReadout {
		readout.OnCommit(func() {
			raw := readout.Text()
			if hasSlider {
				slider.SetValue(raw)
			}
			if b.Suppressed() {
				return
			}
			b.writeParsed(sectionID, f, raw, 0)
		})
	}
}

func (rangedHandler) render(b *Binder, sectionID string, f section.Field, v any) {
	text := section.Format(v)
	if slider, ok := b.controls.Slider(sectionID, f.Key); ok {
		slider.SetValue(text)
	}
	if readout, ok := b.controls.Readout(sectionID, f.Key); ok {
		readout.SetText(text)
	}
}

func (rangedHandler) read(b *Binder, sectionID string, f section.Field) (any, bool) {
	var raw string
	if slider, ok := b.controls.Slider(sectionID, f.Key); ok {
		raw = slider.Value()
	} else if readout, ok := b.controls.Readout(sectionID, f.Key); ok {
		raw = readout.Text()
	} else {
		return nil, false
	}
	v, err := f.Kind.Parse(raw)
	if err != nil {
		return nil, false
	}
	return v, true
}

func (b *Binder) writeParsed(sectionID string, f section.Field, raw string, delay time.Duration) {
	v, err := f.Kind.Parse(raw)
	if err != nil {
		b.log.Debug("dropping unparsable input",
			zap.String("section", sectionID),
			zap.String("field", f.Key),
			zap.String("raw", raw),
			zap.Error(err),
		)
		return
	}
	b.write(sectionID, f.Key, v, delay)
}
