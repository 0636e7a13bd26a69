package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// runMsg carries engine work onto the Bubble Tea update goroutine.
type runMsg func()

// Dispatcher implements engine.Dispatcher on top of a Bubble Tea program:
// posted work arrives in Update as a runMsg, so engine state and widgets are
// only touched on the update goroutine.
type Dispatcher struct {
	once    sync.Once
	ready   chan struct{}
	program *tea.Program
	work    sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. Work posted before Attach waits for it.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{ready: make(chan struct{})}
}

// Attach connects the program that will receive posted work.
func (d *Dispatcher) Attach(p *tea.Program) {
	d.once.Do(func() {
		d.program = p
		close(d.ready)
	})
}

// Post implements engine.Dispatcher. It never blocks the caller, which may
// be the update goroutine itself.
func (d *Dispatcher) Post(fn func()) {
	go d.send(fn)
}

// Go implements engine.Dispatcher.
func (d *Dispatcher) Go(work func() func()) {
	d.work.Add(1)
	go func() {
		defer d.work.Done()
		if next := work(); next != nil {
			d.send(next)
		}
	}()
}

// Drain waits up to timeout for work started with Go to return. It reports
// whether everything finished.
func (d *Dispatcher) Drain(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		d.work.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (d *Dispatcher) send(fn func()) {
	<-d.ready
	d.program.Send(runMsg(fn))
}
