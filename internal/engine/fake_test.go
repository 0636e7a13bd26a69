package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/five82/switchboard/internal/remote"
)

// fakeAPI is a scriptable remote.API. Section results are looked up by
// endpoint; a missing entry returns an error.
type fakeAPI struct {
	mu sync.Mutex

	meta     remote.Meta
	metaErr  error
	sections map[string]remote.Snapshot
	failing  map[string]error
	patchErr error
	profiles []string
	listErr  error
	loadErr  error
	saveErr  error
	syncErr  error

	calls   []string
	patches []patchCall
}

type patchCall struct {
	Endpoint string
	Payload  map[string]any
}

var _ remote.API = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		sections: make(map[string]remote.Snapshot),
		failing:  make(map[string]error),
	}
}

func (f *fakeAPI) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) setSection(endpoint string, snap remote.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sections[endpoint] = snap
}

func (f *fakeAPI) setFailing(endpoint string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failing, endpoint)
		return
	}
	f.failing[endpoint] = err
}

func (f *fakeAPI) FetchMeta(context.Context) (remote.Meta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GET /meta")
	return f.meta, f.metaErr
}

func (f *fakeAPI) FetchSection(_ context.Context, endpoint string) (remote.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GET /state/" + endpoint)
	if err := f.failing[endpoint]; err != nil {
		return nil, err
	}
	snap, ok := f.sections[endpoint]
	if !ok {
		return nil, fmt.Errorf("no such section %q", endpoint)
	}
	return snap.Clone(), nil
}

func (f *fakeAPI) PatchSection(_ context.Context, endpoint string, payload map[string]any) (remote.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("PATCH /state/" + endpoint)
	f.patches = append(f.patches, patchCall{Endpoint: endpoint, Payload: payload})
	if f.patchErr != nil {
		return nil, f.patchErr
	}
	snap := f.sections[endpoint].Clone()
	if snap == nil {
		snap = remote.Snapshot{}
	}
	for k, v := range payload {
		snap[k] = v
	}
	f.sections[endpoint] = snap
	return snap.Clone(), nil
}

func (f *fakeAPI) ListProfiles(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GET /configs")
	return append([]string(nil), f.profiles...), f.listErr
}

func (f *fakeAPI) LoadProfile(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("POST /configs/load " + name)
	return f.loadErr
}

func (f *fakeAPI) SaveNewProfile(_ context.Context, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("POST /configs/save-new " + name)
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.profiles = append(f.profiles, name)
	return name, nil
}

func (f *fakeAPI) SaveWorking(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("POST /actions/save-config")
	return f.syncErr
}

var errUnreachable = errors.New("connection refused")
