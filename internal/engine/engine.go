package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/switchboard/internal/binder"
	"github.com/five82/switchboard/internal/logging"
	"github.com/five82/switchboard/internal/remote"
	"github.com/five82/switchboard/internal/scheduler"
	"github.com/five82/switchboard/internal/section"
	"github.com/five82/switchboard/internal/state"
)

// Options configure an Engine.
type Options struct {
	// Context bounds writes issued by the scheduler. Defaults to Background.
	Context    context.Context
	Registry   *section.Registry
	API        remote.API
	Controls   binder.Controls
	Dispatcher Dispatcher

	Store    *state.Store
	Debounce time.Duration // zero uses binder.DefaultDebounce
	Clock    scheduler.Clock

	// OnChange runs on the dispatcher goroutine after state changes.
	OnChange func()
}

// Engine keeps controls and remote section state in sync.
type Engine struct {
	ctx      context.Context
	reg      *section.Registry
	api      remote.API
	dispatch Dispatcher
	store    *state.Store
	binder   *binder.Binder
	sched    *scheduler.Scheduler
	clock    scheduler.Clock
	onChange func()
	log      *zap.Logger

	// Dispatcher goroutine only.
	inflight map[string]bool
	fetchGen map[string]uint64

	mu       sync.Mutex
	profiles Profiles
	syncGen  uint64
}

// New wires the binder and write scheduler and binds every section of the
// registry to its controls.
func New(opts Options) (*Engine, error) {
	if opts.Registry == nil {
		return nil, errors.New("engine: registry is required")
	}
	if opts.API == nil {
		return nil, errors.New("engine: remote API is required")
	}
	if opts.Controls == nil {
		return nil, errors.New("engine: controls are required")
	}
	if opts.Dispatcher == nil {
		return nil, errors.New("engine: dispatcher is required")
	}

	e := &Engine{
		ctx:      opts.Context,
		reg:      opts.Registry,
		api:      opts.API,
		dispatch: opts.Dispatcher,
		store:    opts.Store,
		clock:    opts.Clock,
		onChange: opts.OnChange,
		log:      logging.Named("engine"),
		inflight: make(map[string]bool),
		fetchGen: make(map[string]uint64),
		profiles: Profiles{SyncLabel: SyncIdle},
	}
	if e.ctx == nil {
		e.ctx = context.Background()
	}
	if e.store == nil {
		e.store = &state.Store{}
	}
	if e.clock == nil {
		e.clock = scheduler.RealClock{}
	}

	e.sched = scheduler.New(e.dispatch, e.deliverWrite, scheduler.WithClock(e.clock))
	e.binder = binder.New(opts.Controls, e.sched, opts.Debounce)
	e.binder.BindAll(e.reg)
	return e, nil
}

// Store returns the section state store.
func (e *Engine) Store() *state.Store {
	return e.store
}

// Registry returns the section registry.
func (e *Engine) Registry() *section.Registry {
	return e.reg
}

// Connectivity returns the current indicator state.
func (e *Engine) Connectivity() state.Connectivity {
	return e.store.Connectivity()
}

// PendingWrites returns the number of debounced writes not yet delivered.
func (e *Engine) PendingWrites() int {
	return e.sched.Pending()
}

// Flush delivers every debounced write now. Call it on the dispatcher
// goroutine before shutdown so the last slider movement is not lost.
func (e *Engine) Flush() {
	e.sched.Flush()
}

// Read returns the typed values the controls of sectionID currently show.
func (e *Engine) Read(sectionID string) (map[string]any, bool) {
	desc, ok := e.reg.Lookup(sectionID)
	if !ok {
		return nil, false
	}
	return e.binder.Read(desc), true
}

func (e *Engine) changed() {
	if e.onChange != nil {
		e.onChange()
	}
}
