package engine

import (
	"context"
	"sync"
	"time"
)

// Dispatcher serializes engine state changes onto one goroutine.
//
// Post queues fn to run there. Go runs work on a separate goroutine and posts
// the continuation it returns; a nil continuation is skipped. Blocking I/O
// belongs in work, state changes in the continuation.
type Dispatcher interface {
	Post(fn func())
	Go(work func() func())
}

// Loop is a channel-backed Dispatcher used by headless sessions.
type Loop struct {
	queue chan func()
	done  chan struct{}
	work  sync.WaitGroup
}

// NewLoop creates a Loop. Run must be called for posted work to execute.
func NewLoop() *Loop {
	return &Loop{
		queue: make(chan func(), 64),
		done:  make(chan struct{}),
	}
}

// Post implements Dispatcher. Work posted after Run returns is dropped.
func (l *Loop) Post(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// Go implements Dispatcher.
func (l *Loop) Go(work func() func()) {
	l.work.Add(1)
	go func() {
		defer l.work.Done()
		if next := work(); next != nil {
			l.Post(next)
		}
	}()
}

// Run executes posted work until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-l.queue:
			fn()
		}
	}
}

// Drain waits up to timeout for work started with Go to return and reports
// whether all of it did. Shutdown calls it after Flush so the final writes
// reach the remote.
func (l *Loop) Drain(timeout time.Duration) bool {
	finished := make(chan struct{})
	go func() {
		l.work.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Inline runs everything synchronously on the caller's goroutine. CLI
// subcommands and tests use it so every operation has finished when the
// call returns.
type Inline struct{}

// Post implements Dispatcher.
func (Inline) Post(fn func()) { fn() }

// Go implements Dispatcher.
func (Inline) Go(work func() func()) {
	if next := work(); next != nil {
		next()
	}
}
