package app

import (
	"encoding/json"
	"maps"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/five82/switchboard/internal/remote"
	"github.com/five82/switchboard/internal/section"
)

// fakeRemote serves the /api/v1 surface from memory.
type fakeRemote struct {
	mu sync.Mutex

	sections map[string]map[string]any
	failing  map[string]bool
	profiles []string

	patchStatus int    // non-zero fails PATCH with this status
	patchBody   string // non-empty is sent verbatim as the PATCH response
	loadStatus  int
	syncStatus  int

	patches []map[string]any
	calls   []string
}

func newFakeRemote(t *testing.T) (*fakeRemote, *remote.Client) {
	t.Helper()
	f := &fakeRemote{
		sections: map[string]map[string]any{
			"pipeline": {"enabled": true, "mode": "fast", "window_size": 5, "gain_x": 2.5},
		},
		failing: map[string]bool{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/meta", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		writeJSON(w, http.StatusOK, map[string]any{"version": "1.2.3", "poll_ms": 500})
	})
	mux.HandleFunc("GET /api/v1/state/{section}", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		id := r.PathValue("section")
		snap, ok := f.sections[id]
		if !ok || f.failing[id] {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "section unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, snap)
	})
	mux.HandleFunc("PATCH /api/v1/state/{section}", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode patch: %v", err)
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.patches = append(f.patches, payload)
		if f.patchStatus != 0 {
			writeJSON(w, f.patchStatus, map[string]any{"message": "rejected"})
			return
		}
		if f.patchBody != "" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(f.patchBody))
			return
		}
		snap := f.sections[r.PathValue("section")]
		maps.Copy(snap, payload)
		writeJSON(w, http.StatusOK, snap)
	})
	mux.HandleFunc("GET /api/v1/configs", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"configs": f.profiles})
	})
	mux.HandleFunc("POST /api/v1/configs/load", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.loadStatus != 0 {
			writeJSON(w, f.loadStatus, map[string]any{"message": "no such config"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	mux.HandleFunc("POST /api/v1/configs/save-new", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		var req struct {
			Name string `json:"name"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		defer f.mu.Unlock()
		f.profiles = append(f.profiles, req.Name)
		writeJSON(w, http.StatusOK, map[string]any{"name": req.Name})
	})
	mux.HandleFunc("POST /api/v1/actions/save-config", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.syncStatus != 0 {
			writeJSON(w, f.syncStatus, map[string]any{"error": "disk full"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := remote.NewClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return f, client
}

func (f *fakeRemote) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
}

func (f *fakeRemote) update(fn func(*fakeRemote)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeRemote) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRemote) Patches() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.patches...)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func testRegistry(t *testing.T) *section.Registry {
	t.Helper()
	reg, err := section.New(
		section.Descriptor{
			ID:       "pipeline",
			Title:    "Pipeline",
			Stateful: true,
			Fields: []section.Field{
				{Key: "enabled", Kind: section.Boolean},
				{Key: "mode", Kind: section.Enum, Options: []string{"normal", "fast"}},
				{Key: "window_size", Kind: section.RangedInt, Min: 1, Max: 500, Step: 1},
				{Key: "gain_x", Kind: section.RangedFloat, Min: 0, Max: 10, Step: 0.5},
			},
		},
		section.Descriptor{ID: "config", Title: "Config"},
	)
	if err != nil {
		t.Fatalf("section.New returned error: %v", err)
	}
	return reg
}
