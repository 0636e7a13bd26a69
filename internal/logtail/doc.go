// Package logtail reads the tail of switchboard's own log file for the log
// pane.
//
// # Reading
//
// Read returns the last N lines of a file in one pass using a ring buffer,
// so memory stays O(N) however large the file grows. A missing file is not
// an error; the pane is simply empty until the logger creates it.
//
// Follower is the incremental form used while the TUI runs. Each Poll seeks
// to the previous offset and reads only appended bytes. A trailing line
// without a newline is held back until it is complete. When the file shrinks
// (truncated or rotated) the follower starts over from the top.
//
// # Parsing
//
// The logging package writes zap's console encoding without caller info:
//
//	2026-10-17T09:14:03.120Z	WARN	engine	section poll failed	{"section": "general", "error": "..."}
//
// Parse splits such a line into an Entry so the pane can colour levels and
// filter by severity with Entry.AtLeast. Anything that does not look like a
// log line comes back with the whole text in Message.
package logtail
