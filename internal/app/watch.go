package app

import (
	"go.uber.org/zap"

	"github.com/five82/switchboard/internal/state"
)

// connectivityWatch logs online/offline transitions in headless sessions.
// It runs on the dispatcher goroutine.
type connectivityWatch struct {
	log    *zap.Logger
	known  bool
	online bool
}

func newConnectivityWatch(log *zap.Logger) *connectivityWatch {
	if log == nil {
		log = zap.NewNop()
	}
	return &connectivityWatch{log: log}
}

func (w *connectivityWatch) observe(c state.Connectivity) {
	if w.known && c.Online == w.online {
		return
	}
	w.known = true
	w.online = c.Online

	if c.Online {
		w.log.Info("remote online", zap.Time("updated", c.LastUpdated))
		return
	}
	fields := []zap.Field{
		zap.Strings("failing", c.FailingSections),
		zap.Int("failed_polls", c.ConsecutiveFailures),
	}
	if c.RemoteReported && !c.RemoteOverall {
		fields = append(fields, zap.Bool("remote_connected", false))
	}
	if c.LastError != nil {
		fields = append(fields, zap.Error(c.LastError))
	}
	w.log.Warn("remote offline", fields...)
}
