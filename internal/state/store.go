package state

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/five82/switchboard/internal/remote"
)

// Connectivity is the derived online/offline signal shown in the header.
type Connectivity struct {
	Online          bool
	RemoteReported  bool // a snapshot carried connected.overall
	RemoteOverall   bool
	FailingSections []string
	LastError       error
	LastUpdated     time.Time

	// ConsecutiveFailures counts poll cycles in a row with at least one
	// failed fetch.
	ConsecutiveFailures int
}

// IsOffline returns true when the indicator should read "Offline".
func (c Connectivity) IsOffline() bool {
	return !c.Online
}

// Store holds the last snapshot received for every section together with the
// inputs of the connectivity indicator.
type Store struct {
	mu        sync.RWMutex
	sections  map[string]remote.Snapshot
	failing   map[string]error
	reported  bool
	overall   bool
	lastError error
	updated   time.Time
	version   string
	failures  int
}

// Replace swaps the stored snapshot for section wholesale.
func (s *Store) Replace(section string, snap remote.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sections == nil {
		s.sections = make(map[string]remote.Snapshot)
	}
	s.sections[section] = snap.Clone()
	s.updated = time.Now()
}

// Section returns a copy of the stored snapshot for section.
func (s *Store) Section(section string) (remote.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.sections[section]
	if !ok {
		return nil, false
	}
	return snap.Clone(), true
}

// RecordFetch records the outcome of the latest fetch of section. A failure
// keeps the previous snapshot but marks the section as failing.
func (s *Store) RecordFetch(section string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failing == nil {
		s.failing = make(map[string]error)
	}
	s.updated = time.Now()
	if err != nil {
		s.failing[section] = err
		s.lastError = err
		return
	}
	delete(s.failing, section)
	if len(s.failing) == 0 {
		s.lastError = nil
	}
}

// EndCycle closes a poll cycle. A cycle with any failed fetch extends the
// failure streak; a clean cycle resets it.
func (s *Store) EndCycle(failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if failed {
		s.failures++
		return
	}
	s.failures = 0
}

// ReportOverall records the connected.overall flag carried by a snapshot.
func (s *Store) ReportOverall(overall bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reported = true
	s.overall = overall
}

// SetVersion records the remote version string shown in the header.
func (s *Store) SetVersion(version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version = version
}

// Version returns the remote version string.
func (s *Store) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Connectivity derives the indicator state. It is online when no section's
// latest fetch failed and the latest reported connected.overall, if any, is
// true.
func (s *Store) Connectivity() Connectivity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := Connectivity{
		RemoteReported: s.reported,
		RemoteOverall:  s.overall,
		LastUpdated:    s.updated,

		ConsecutiveFailures: s.failures,
	}
	for name := range s.failing {
		c.FailingSections = append(c.FailingSections, name)
	}
	sort.Strings(c.FailingSections)
	if s.lastError != nil {
		c.LastError = fmt.Errorf("%w", s.lastError)
	}
	c.Online = len(s.failing) == 0 && (!s.reported || s.overall)
	return c
}
