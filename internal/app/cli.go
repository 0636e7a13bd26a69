package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/five82/switchboard/internal/binder"
	"github.com/five82/switchboard/internal/engine"
	"github.com/five82/switchboard/internal/remote"
	"github.com/five82/switchboard/internal/section"
)

// CLI runs one-shot operations for the subcommands. It drives the same
// engine as the TUI with the Inline dispatcher, so each call has finished
// talking to the remote when it returns.
type CLI struct {
	ctx      context.Context
	api      remote.API
	eng      *engine.Engine
	controls *binder.Memory
	out      io.Writer

	mu       sync.Mutex
	statuses []engine.Status
}

// NewCLI builds a CLI that writes its results to out.
func NewCLI(ctx context.Context, reg *section.Registry, api remote.API, out io.Writer) (*CLI, error) {
	c := &CLI{
		ctx:      ctx,
		api:      api,
		controls: binder.NewMemory(reg),
		out:      out,
	}
	eng, err := engine.New(engine.Options{
		Context:    ctx,
		Registry:   reg,
		API:        api,
		Controls:   c.controls,
		Dispatcher: engine.Inline{},
		OnChange:   c.recordStatus,
	})
	if err != nil {
		return nil, err
	}
	c.eng = eng
	return c, nil
}

// recordStatus keeps every distinct profile status the engine reports during
// one operation. Later steps of an operation overwrite the status line, so
// the first entry is the operation's own outcome.
func (c *CLI) recordStatus() {
	if c.eng == nil {
		return
	}
	status := c.eng.Profiles().Status
	if status.Text == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if n := len(c.statuses); n > 0 && c.statuses[n-1] == status {
		return
	}
	c.statuses = append(c.statuses, status)
}

func (c *CLI) resetStatus() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses = nil
}

// outcome returns the first status recorded since resetStatus.
func (c *CLI) outcome() (engine.Status, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.statuses) == 0 {
		return engine.Status{}, false
	}
	return c.statuses[0], true
}

func (c *CLI) report() error {
	status, ok := c.outcome()
	if !ok {
		return nil
	}
	if status.IsError {
		return errors.New(status.Text)
	}
	_, err := fmt.Fprintln(c.out, status.Text)
	return err
}

// ListProfiles prints the saved profile names, one per line.
func (c *CLI) ListProfiles() error {
	c.resetStatus()
	c.eng.RefreshProfiles(c.ctx)
	if status, ok := c.outcome(); ok && status.IsError {
		return errors.New(status.Text)
	}
	for _, name := range c.eng.Profiles().Names {
		if _, err := fmt.Fprintln(c.out, name); err != nil {
			return err
		}
	}
	return nil
}

// LoadProfile activates a saved profile.
func (c *CLI) LoadProfile(name string) error {
	c.resetStatus()
	if err := c.eng.LoadProfile(c.ctx, name); err != nil {
		return err
	}
	return c.report()
}

// SaveProfile stores the current remote state under a new name.
func (c *CLI) SaveProfile(name string) error {
	c.resetStatus()
	if err := c.eng.SaveAsNewProfile(c.ctx, name); err != nil {
		return err
	}
	return c.report()
}

// Sync persists the working config under its current identity.
func (c *CLI) Sync() error {
	c.eng.PersistCurrentWorking(c.ctx)
	if label := c.eng.Profiles().SyncLabel; label != engine.SyncOK {
		return fmt.Errorf("save working config: %s", label)
	}
	_, err := fmt.Fprintln(c.out, "Working config saved.")
	return err
}

// Meta prints the remote version and poll interval.
func (c *CLI) Meta() error {
	meta, err := c.api.FetchMeta(c.ctx)
	if err != nil {
		return fmt.Errorf("fetch meta: %w", err)
	}
	_, err = fmt.Fprintf(c.out, "version: %s\npoll interval: %s\n", meta.DisplayVersion(), meta.PollInterval())
	return err
}

// Show fetches sections and prints each field as section.key = value. With no
// ids every stateful section is shown.
func (c *CLI) Show(ids ...string) error {
	descs, err := c.stateful(ids)
	if err != nil {
		return err
	}
	c.eng.RefreshAll(c.ctx)

	failing := c.eng.Connectivity().FailingSections
	var failed []string
	for _, desc := range descs {
		if slices.Contains(failing, desc.ID) {
			failed = append(failed, desc.ID)
			continue
		}
		values, _ := c.eng.Read(desc.ID)
		for _, f := range desc.Fields {
			v, ok := values[f.Key]
			if !ok {
				continue
			}
			if _, err := fmt.Fprintf(c.out, "%s.%s = %s\n", desc.ID, f.Key, section.Format(v)); err != nil {
				return err
			}
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("fetch failed: %s", strings.Join(failed, ", "))
	}
	return nil
}

func (c *CLI) stateful(ids []string) ([]section.Descriptor, error) {
	if len(ids) == 0 {
		return c.eng.Registry().Stateful(), nil
	}
	descs := make([]section.Descriptor, 0, len(ids))
	for _, id := range ids {
		desc, ok := c.eng.Registry().Lookup(id)
		if !ok {
			return nil, fmt.Errorf("unknown section %q", id)
		}
		if !desc.Stateful {
			return nil, fmt.Errorf("section %q has no remote state", id)
		}
		descs = append(descs, desc)
	}
	return descs, nil
}

// Set writes one field through its control, the same path an operator edit
// takes, and prints the value the remote confirmed.
func (c *CLI) Set(sectionID, key, raw string) error {
	descs, err := c.stateful([]string{sectionID})
	if err != nil {
		return err
	}
	desc := descs[0]
	f, ok := desc.Field(key)
	if !ok {
		return fmt.Errorf("section %q has no field %q", sectionID, key)
	}
	want, err := f.Kind.Parse(raw)
	if err != nil {
		return err
	}
	if err := checkValue(f, want); err != nil {
		return err
	}

	// Controls must show the current remote state before an edit.
	c.eng.RefreshAll(c.ctx)
	if slices.Contains(c.eng.Connectivity().FailingSections, sectionID) {
		return fmt.Errorf("fetch %s: %w", sectionID, c.eng.Connectivity().LastError)
	}

	switch f.Kind {
	case section.Boolean:
		toggle, _ := c.controls.MemToggle(sectionID, key)
		if toggle.Checked() != want.(bool) {
			toggle.Click()
		}
	case section.Enum:
		choice, _ := c.controls.MemChoice(sectionID, key)
		choice.Select(want.(string))
	default:
		readout, _ := c.controls.MemReadout(sectionID, key)
		readout.Commit(strings.TrimSpace(raw))
	}
	c.eng.Flush()

	snap, _ := c.eng.Store().Section(sectionID)
	got := section.Format(snap[key])
	if _, err := fmt.Fprintf(c.out, "%s.%s = %s\n", sectionID, key, got); err != nil {
		return err
	}
	if !confirmed(f, snap[key], want) {
		return fmt.Errorf("remote reports %s.%s = %s, requested %s", sectionID, key, got, section.Format(want))
	}
	return nil
}

// checkValue rejects values the TUI controls could never produce.
func checkValue(f section.Field, v any) error {
	switch f.Kind {
	case section.Enum:
		if len(f.Options) > 0 && !slices.Contains(f.Options, v.(string)) {
			return fmt.Errorf("%s: %q is not one of %s", f.Key, v, strings.Join(f.Options, ", "))
		}
	case section.RangedInt, section.RangedFloat:
		if f.Max <= f.Min {
			return nil
		}
		n := asFloat(v)
		if n < f.Min || n > f.Max {
			return fmt.Errorf("%s: %s is outside %s..%s", f.Key, section.Format(v), section.Format(f.Min), section.Format(f.Max))
		}
	}
	return nil
}

// confirmed reports whether the remote value matches the requested one.
// Ranged values compare as numbers since the remote may render 1 as 1.0.
func confirmed(f section.Field, got, want any) bool {
	if !f.Kind.Ranged() {
		return section.Format(got) == section.Format(want)
	}
	n, err := strconv.ParseFloat(section.Format(got), 64)
	return err == nil && n == asFloat(want)
}

func asFloat(v any) float64 {
	switch val := v.(type) {
	case int64:
		return float64(val)
	case float64:
		return val
	}
	return 0
}
