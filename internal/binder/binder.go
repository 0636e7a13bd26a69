// Package binder connects section fields to UI controls. Operator edits become
// scheduled writes; snapshots from the remote render into the controls with
// change handling suppressed.
package binder

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/five82/switchboard/internal/logging"
	"github.com/five82/switchboard/internal/section"
)

// DefaultDebounce is the delay applied to writes from continuous controls.
const DefaultDebounce = 200 * time.Millisecond

// Writer receives field writes produced by control events.
type Writer interface {
	Schedule(section string, payload map[string]any, delay time.Duration)
}

// Binder connects controls to the write path and renders snapshots back into
// them. It never touches section state itself.
type Binder struct {
	controls   Controls
	writer     Writer
	debounce   time.Duration
	suppressed atomic.Int32
	log        *zap.Logger
}

// New creates a Binder. A non-positive debounce uses DefaultDebounce.
func New(controls Controls, writer Writer, debounce time.Duration) *Binder {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Binder{
		controls: controls,
		writer:   writer,
		debounce: debounce,
		log:      logging.Named("binder"),
	}
}

// Suppress opens an apply scope during which every observer is a no-op. The
// returned release func must be called exactly once, normally via defer.
// Scopes nest.
func (b *Binder) Suppress() (release func()) {
	b.suppressed.Add(1)
	var once atomic.Bool
	return func() {
		if once.CompareAndSwap(false, true) {
			b.suppressed.Add(-1)
		}
	}
}

// Suppressed reports whether an apply scope is open.
func (b *Binder) Suppressed() bool {
	return b.suppressed.Load() > 0
}

// Bind attaches observers to the controls of every field in desc.
func (b *Binder) Bind(desc section.Descriptor) {
	for _, f := range desc.Fields {
		handlerFor(f.Kind).bind(b, desc.ID, f)
	}
}

// BindAll binds every section of the registry.
func (b *Binder) BindAll(reg *section.Registry) {
	for _, desc := range reg.Sections() {
		b.Bind(desc)
	}
}

// Render writes each declared field present in snap into its controls. It
// does not open a suppression scope; callers applying remote state do that.
func (b *Binder) Render(desc section.Descriptor, snap map[string]any) {
	for _, f := range desc.Fields {
		v, ok := snap[f.Key]
		if !ok {
			continue
		}
		handlerFor(f.Kind).render(b, desc.ID, f, v)
	}
}

// Read returns the typed values currently shown by the controls of desc.
// Fields whose controls are missing or hold unparsable input are omitted.
func (b *Binder) Read(desc section.Descriptor) map[string]any {
	out := make(map[string]any, len(desc.Fields))
	for _, f := range desc.Fields {
		if v, ok := handlerFor(f.Kind).read(b, desc.ID, f); ok {
			out[f.Key] = v
		}
	}
	return out
}

func (b *Binder) write(sectionID, key string, value any, delay time.Duration) {
	if b.writer == nil {
		return
	}
	b.writer.Schedule(sectionID, map[string]any{key: value}, delay)
}
