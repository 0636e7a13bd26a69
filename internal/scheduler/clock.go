package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock creates timers. Production code uses RealClock; tests use FakeClock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock is backed by time.AfterFunc.
type RealClock struct{}

// AfterFunc implements Clock.
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// FakeClock is a manually advanced Clock. Callbacks run synchronously inside
// Advance, in deadline order.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock    *FakeClock
	id       int
	deadline time.Duration
	fn       func()
	stopped  bool
	fired    bool
}

// AfterFunc implements Clock.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	t := &fakeTimer{clock: c, id: c.nextID, deadline: c.now + d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d and runs every timer that came due.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		due := c.nextDueLocked(target)
		if due == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = due.deadline
		due.fired = true
		c.mu.Unlock()

		due.fn()
	}
}

// Elapsed returns how far the clock has been advanced.
func (c *FakeClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Live returns the number of timers that have neither fired nor been stopped.
func (c *FakeClock) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (c *FakeClock) nextDueLocked(target time.Duration) *fakeTimer {
	var live []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.deadline <= target {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].deadline == live[j].deadline {
			return live[i].id < live[j].id
		}
		return live[i].deadline < live[j].deadline
	})
	return live[0]
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
