package engine

import (
	"go.uber.org/zap"

	"github.com/five82/switchboard/internal/remote"
	"github.com/five82/switchboard/internal/section"
)

// ApplySnapshot replaces the stored state of sectionID with snap and renders
// it into the controls. Control observers are suppressed for the whole render
// so applying never schedules a write. It must run on the dispatcher
// goroutine.
func (e *Engine) ApplySnapshot(sectionID string, snap remote.Snapshot) {
	desc, ok := e.reg.Lookup(sectionID)
	if !ok {
		e.log.Warn("snapshot for unknown section", zap.String("section", sectionID))
		return
	}
	e.store.Replace(sectionID, snap)
	e.render(sectionID, snap, desc)
	e.changed()
}

func (e *Engine) render(sectionID string, snap remote.Snapshot, desc section.Descriptor) {
	release := e.binder.Suppress()
	defer release()

	e.binder.Render(desc, snap)
	if overall, ok := snap.Connected(); ok {
		e.store.ReportOverall(overall)
	}
}

// deliverWrite is the scheduler's delivery target. The PATCH response is the
// new authoritative snapshot. A failed write is logged and the controls keep
// the value the operator entered until the next successful read.
func (e *Engine) deliverWrite(sectionID string, payload map[string]any) {
	desc, ok := e.reg.Lookup(sectionID)
	if !ok || !desc.Stateful {
		e.log.Warn("dropping write to section without remote state", zap.String("section", sectionID))
		return
	}
	endpoint := desc.RemoteEndpoint()
	e.dispatch.Go(func() func() {
		snap, err := e.api.PatchSection(e.ctx, endpoint, payload)
		return func() {
			if err != nil {
				e.log.Error("write failed",
					zap.String("section", sectionID),
					zap.Any("payload", payload),
					zap.Error(err),
				)
				return
			}
			if snap == nil {
				return
			}
			e.ApplySnapshot(sectionID, snap)
		}
	})
}
