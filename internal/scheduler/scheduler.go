package scheduler

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/switchboard/internal/logging"
)

// Poster runs fn on the goroutine that owns engine state.
type Poster interface {
	Post(fn func())
}

// DeliverFunc sends one write to the remote. It is always called on the
// poster's goroutine or, for immediate writes, on the caller's.
type DeliverFunc func(section string, payload map[string]any)

// Key identifies a pending write: the section plus the sorted set of field
// keys in its payload. Field keys are quoted before joining so no two sets
// share a Key.
type Key struct {
	Section string
	Fields  string
}

// KeyFor derives the identity of a write.
func KeyFor(section string, payload map[string]any) Key {
	fields := make([]string, 0, len(payload))
	for k := range payload {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	for i, f := range fields {
		fields[i] = strconv.Quote(f)
	}
	return Key{Section: section, Fields: strings.Join(fields, ",")}
}

type entry struct {
	section string
	payload map[string]any
	timer   Timer
	seq     uint64
}

// Scheduler coalesces writes per Key. Scheduling a write cancels and
// replaces any pending write with the same Key, so only the last value
// scheduled within a delay window is delivered.
type Scheduler struct {
	mu      sync.Mutex
	clock   Clock
	post    Poster
	deliver DeliverFunc
	pending map[Key]*entry
	seq     uint64
	log     *zap.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the real clock.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// New creates a Scheduler. Timer expiry is handed to post so delivery happens
// on the engine goroutine.
func New(post Poster, deliver DeliverFunc, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:   RealClock{},
		post:    post,
		deliver: deliver,
		pending: make(map[Key]*entry),
		log:     logging.Named("scheduler"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule queues payload for section. A non-positive delay delivers at once.
func (s *Scheduler) Schedule(section string, payload map[string]any, delay time.Duration) {
	if len(payload) == 0 {
		return
	}
	key := KeyFor(section, payload)
	body := make(map[string]any, len(payload))
	for k, v := range payload {
		body[k] = v
	}

	s.mu.Lock()
	if prev, ok := s.pending[key]; ok {
		prev.timer.Stop()
		delete(s.pending, key)
	}
	if delay <= 0 {
		s.mu.Unlock()
		s.log.Debug("write", zap.String("section", section), zap.String("fields", key.Fields))
		s.deliver(section, body)
		return
	}

	s.seq++
	seq := s.seq
	e := &entry{section: section, payload: body, seq: seq}
	e.timer = s.clock.AfterFunc(delay, func() {
		s.post.Post(func() { s.fire(key, seq) })
	})
	s.pending[key] = e
	s.mu.Unlock()
}

func (s *Scheduler) fire(key Key, seq uint64) {
	s.mu.Lock()
	e, ok := s.pending[key]
	if !ok || e.seq != seq {
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	s.mu.Unlock()

	s.log.Debug("debounced write", zap.String("section", e.section), zap.String("fields", key.Fields))
	s.deliver(e.section, e.payload)
}

// Pending returns the number of writes waiting for their delay to elapse.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Flush delivers every pending write now, ordered by Key.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	entries := make([]*entry, 0, len(s.pending))
	keys := make([]Key, 0, len(s.pending))
	for k, e := range s.pending {
		e.timer.Stop()
		keys = append(keys, k)
		entries = append(entries, e)
	}
	s.pending = make(map[Key]*entry)
	s.mu.Unlock()

	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ka, kb := keys[order[a]], keys[order[b]]
		if ka.Section != kb.Section {
			return ka.Section < kb.Section
		}
		return ka.Fields < kb.Fields
	})
	for _, i := range order {
		s.deliver(entries[i].section, entries[i].payload)
	}
}
