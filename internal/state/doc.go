// Package state holds the client's belief about remote truth.
//
// # Overview
//
// Store keeps the last snapshot received for every stateful section and the
// inputs of the connectivity indicator. It is written by the sync engine and
// read by the UI when rendering the header and by CLI subcommands when
// printing reconciled state.
//
// # Snapshots
//
// A section's snapshot is only ever replaced wholesale by a snapshot from the
// remote (poll response, PATCH response, reconciliation after a profile load).
// Fields are never merged with an older snapshot, so a field the remote drops
// disappears locally too.
//
//	poll / PATCH response ──> Store.Replace(section, snap)   (full replace)
//	fetch outcome         ──> Store.RecordFetch(section, err)
//	connected.overall     ──> Store.ReportOverall(flag)
//	header render         <── Store.Connectivity()
//
// # Connectivity
//
// The indicator is derived, not stored:
//
//	Online = no section's latest fetch failed
//	         AND (no snapshot reported connected.overall OR the latest report was true)
//
// A failing section therefore flips the indicator offline for the whole cycle
// even when other sections succeed, and the next successful fetch of that
// section clears it again.
//
// # Concurrency Model
//
// Store uses a sync.RWMutex. Snapshots and errors are copied on the way out so
// callers can never mutate stored data.
package state
