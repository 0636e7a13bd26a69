// Package scheduler coalesces field writes before they reach the remote.
//
// Writes are identified by a Key made of the section and the sorted set of
// field keys in the payload. At most one write per Key is pending at any time:
// scheduling again stops the old timer and replaces the entry, and a fired
// timer only delivers if its entry is still the current one. Continuous
// controls therefore send the last value of a burst and nothing else.
//
// Timer callbacks never deliver directly. They post back to the engine's
// dispatcher so delivery runs on the same goroutine as every other state
// change.
package scheduler
