// Package engine is the state synchronization engine.
//
// It owns the path from control edits to remote writes and from remote
// snapshots back to controls:
//
//	control event -> binder -> scheduler -> PATCH -> ApplySnapshot
//	poll tick     -> GET /state/{section}          -> ApplySnapshot
//
// Every state change runs on a single dispatcher goroutine. Remote calls run
// elsewhere via Dispatcher.Go and hand their results back as continuations,
// so ApplySnapshot's suppression scope is never held across I/O.
//
// The profile manager lives here too. Its failures never escape as errors;
// they become a Status line, except for blank names, which also return
// ErrEmptyName.
package engine
