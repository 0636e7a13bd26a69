package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/switchboard/internal/remote"
	"github.com/five82/switchboard/internal/section"
)

// Boot reads /meta once, records the remote version and returns the poll
// interval the remote asked for. It then queues an initial refresh of every
// section and of the profile list. Boot performs I/O on the caller's
// goroutine and must not be called on the dispatcher goroutine of a Loop.
func (e *Engine) Boot(ctx context.Context) time.Duration {
	interval := remote.DefaultPollInterval
	meta, err := e.api.FetchMeta(ctx)
	if err != nil {
		e.log.Warn("meta fetch failed; using default poll interval",
			zap.Duration("interval", interval),
			zap.Error(err),
		)
		e.store.SetVersion("v?")
	} else {
		interval = meta.PollInterval()
		e.store.SetVersion(meta.DisplayVersion())
		e.log.Info("connected to remote",
			zap.String("version", meta.Version),
			zap.Duration("poll_interval", interval),
		)
	}

	e.dispatch.Post(func() {
		e.RefreshAll(ctx)
		e.RefreshProfiles(ctx)
	})
	return interval
}

// Poll runs one full refresh per interval until ctx is cancelled. Refreshes
// are posted to the dispatcher; a section whose previous fetch is still in
// flight is skipped for that tick.
func (e *Engine) Poll(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = remote.DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.dispatch.Post(func() { e.RefreshAll(ctx) })
		}
	}
}

// RefreshAll fetches every stateful section independently and applies each
// snapshot as it arrives. A failed fetch marks that section offline and does
// not affect the others. It must run on the dispatcher goroutine.
func (e *Engine) RefreshAll(ctx context.Context) {
	e.refresh(ctx, false)
}

// reconcile fetches every stateful section even when a poll fetch is still
// in flight. Responses to fetches started earlier are dropped when they
// arrive, so a read taken before a profile load never lands after it.
func (e *Engine) reconcile(ctx context.Context) {
	e.refresh(ctx, true)
}

func (e *Engine) refresh(ctx context.Context, force bool) {
	var due []section.Descriptor
	for _, desc := range e.reg.Stateful() {
		if !force && e.inflight[desc.ID] {
			e.log.Debug("fetch still in flight; skipping", zap.String("section", desc.ID))
			continue
		}
		due = append(due, desc)
	}
	if len(due) == 0 {
		return
	}

	c := &cycle{outstanding: len(due)}
	for _, desc := range due {
		sectionID, endpoint := desc.ID, desc.RemoteEndpoint()
		e.fetchGen[sectionID]++
		gen := e.fetchGen[sectionID]
		e.inflight[sectionID] = true
		e.dispatch.Go(func() func() {
			snap, err := e.api.FetchSection(ctx, endpoint)
			return func() {
				if e.fetchGen[sectionID] != gen {
					e.log.Debug("dropping superseded fetch", zap.String("section", sectionID))
					e.endFetch(c)
					return
				}
				delete(e.inflight, sectionID)
				e.finishFetch(c, sectionID, snap, err)
			}
		})
	}
}

// cycle tracks the fetches of one RefreshAll. It is only touched on the
// dispatcher goroutine.
type cycle struct {
	outstanding int
	failed      bool
}

func (e *Engine) finishFetch(c *cycle, sectionID string, snap remote.Snapshot, err error) {
	e.store.RecordFetch(sectionID, err)
	if err != nil {
		c.failed = true
		e.log.Warn("section poll failed", zap.String("section", sectionID), zap.Error(err))
		e.changed()
	} else if snap != nil {
		e.ApplySnapshot(sectionID, snap)
	} else {
		e.changed()
	}

	e.endFetch(c)
}

func (e *Engine) endFetch(c *cycle) {
	c.outstanding--
	if c.outstanding == 0 {
		e.store.EndCycle(c.failed)
	}
}
