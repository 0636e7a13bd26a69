package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Sync button labels.
const (
	SyncIdle   = "SYNC"
	SyncOK     = "SYNCED"
	SyncFailed = "ERROR"
)

const (
	syncOKRevert     = 900 * time.Millisecond
	syncFailedRevert = 1200 * time.Millisecond
)

// ErrEmptyName is returned when a profile action is given a blank name. No
// remote call is made.
var ErrEmptyName = errors.New("profile name is empty")

// Status is the profile pane status line. IsError only affects emphasis.
type Status struct {
	Text    string
	IsError bool
}

// Profiles is the view model of the profile manager.
type Profiles struct {
	Names     []string
	Selected  string
	NameInput string
	Status    Status
	SyncLabel string
}

// Profiles returns a copy of the profile manager state.
func (e *Engine) Profiles() Profiles {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.profiles
	p.Names = slices.Clone(e.profiles.Names)
	return p
}

// SelectProfile changes the selected name.
func (e *Engine) SelectProfile(name string) {
	e.mu.Lock()
	e.profiles.Selected = name
	e.mu.Unlock()
	e.changed()
}

// SetNameInput updates the new-profile name field.
func (e *Engine) SetNameInput(name string) {
	e.mu.Lock()
	e.profiles.NameInput = name
	e.mu.Unlock()
}

func (e *Engine) setStatus(text string, isError bool) {
	e.mu.Lock()
	e.profiles.Status = Status{Text: text, IsError: isError}
	e.mu.Unlock()
	e.changed()
}

// RefreshProfiles reloads the profile list. The previous selection is kept
// when the new list still contains it; otherwise the first name is selected.
func (e *Engine) RefreshProfiles(ctx context.Context) {
	e.dispatch.Go(func() func() {
		names, err := e.api.ListProfiles(ctx)
		return func() {
			if err != nil {
				e.log.Warn("list profiles failed", zap.Error(err))
				e.setStatus(fmt.Sprintf("Failed to list configs: %v", err), true)
				return
			}
			e.mu.Lock()
			e.profiles.Names = names
			e.profiles.Selected = pickSelection(names, e.profiles.Selected)
			e.mu.Unlock()
			e.setStatus(fmt.Sprintf("Loaded %d config(s).", len(names)), false)
		}
	})
}

func pickSelection(names []string, previous string) string {
	if previous != "" && slices.Contains(names, previous) {
		return previous
	}
	if len(names) > 0 {
		return names[0]
	}
	return ""
}

// LoadProfile activates the named profile and, on success, refreshes every
// stateful section so the controls show it at once.
func (e *Engine) LoadProfile(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		e.setStatus("Select a config first.", true)
		return ErrEmptyName
	}
	e.dispatch.Go(func() func() {
		err := e.api.LoadProfile(ctx, name)
		return func() {
			if err != nil {
				e.log.Warn("load profile failed", zap.String("name", name), zap.Error(err))
				e.setStatus(fmt.Sprintf("Load failed: %v", err), true)
				return
			}
			e.log.Info("profile loaded", zap.String("name", name))
			e.setStatus("Loaded config: "+name, false)
			e.reconcile(ctx)
		}
	})
	return nil
}

// SaveAsNewProfile stores the current remote state under a new name, then
// refreshes the list and clears the name input.
func (e *Engine) SaveAsNewProfile(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		e.setStatus("Enter a config name.", true)
		return ErrEmptyName
	}
	e.dispatch.Go(func() func() {
		saved, err := e.api.SaveNewProfile(ctx, name)
		return func() {
			if err != nil {
				e.log.Warn("save profile failed", zap.String("name", name), zap.Error(err))
				e.setStatus(fmt.Sprintf("Save failed: %v", err), true)
				return
			}
			if saved == "" {
				saved = name
			}
			e.log.Info("profile saved", zap.String("name", saved))
			e.mu.Lock()
			e.profiles.NameInput = ""
			e.profiles.Selected = saved
			e.mu.Unlock()
			e.setStatus("Saved new config: "+saved, false)
			e.RefreshProfiles(ctx)
		}
	})
	return nil
}

// PersistCurrentWorking commits the live remote state under its current
// identity. The outcome shows as a transient sync label.
func (e *Engine) PersistCurrentWorking(ctx context.Context) {
	e.dispatch.Go(func() func() {
		err := e.api.SaveWorking(ctx)
		return func() {
			if err != nil {
				e.log.Error("save working config failed", zap.Error(err))
				e.flashSync(SyncFailed, syncFailedRevert)
				return
			}
			e.flashSync(SyncOK, syncOKRevert)
		}
	})
}

func (e *Engine) flashSync(label string, revert time.Duration) {
	e.mu.Lock()
	e.syncGen++
	gen := e.syncGen
	e.profiles.SyncLabel = label
	e.mu.Unlock()
	e.changed()

	e.clock.AfterFunc(revert, func() {
		e.dispatch.Post(func() {
			e.mu.Lock()
			current := e.syncGen == gen
			if current {
				e.profiles.SyncLabel = SyncIdle
			}
			e.mu.Unlock()
			if current {
				e.changed()
			}
		})
	})
}
