package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100
)

// Field row geometry.
const (
	labelWidth      = 20
	trackWidth      = 28
	compactTrack    = 14
	readoutMaxChars = 16
)

// Log display limits.
const (
	// LogBufferLimit is the maximum number of log lines kept for the logs tab.
	LogBufferLimit = 2000
)

// Timing constants.
const (
	// UIRefreshInterval drives the header clock and the log tail.
	UIRefreshInterval = time.Second

	// DrainTimeout bounds how long shutdown waits for in-flight writes.
	DrainTimeout = 3 * time.Second
)
