// Package app is the composition root of switchboard.
//
// # Overview
//
// Run loads the configuration and section registry, builds the remote client
// and starts one session. On a terminal the session is the Bubble Tea TUI;
// otherwise (or with Options.Headless) it is a headless poller that logs
// connectivity transitions to stderr.
//
// # Run Group
//
// Both modes run under an errgroup:
//
//	Run()
//	 ├─> Prepare()           config.Load, section.Load/Default, remote.NewClient
//	 ├─> logging.Initialize  log file for the TUI, stderr when headless
//	 └─> errgroup
//	      ├─ ui.Run          (TUI)      or  engine.Loop.Run (headless)
//	      └─ Boot + Poll     /meta once, then one refresh per interval
//
// Quitting the TUI cancels the group. Shutdown then flushes debounced writes
// and waits up to three seconds for requests still in flight.
//
// Engine writes use a context detached from cancellation so the final flush
// still reaches the remote after Ctrl+C.
//
// # Subcommands
//
// CLI wraps an engine with the Inline dispatcher and in-memory controls.
// Every operation has completed when its method returns, which keeps the
// subcommands in cmd/switchboard one call each.
//
// # Errors
//
// Prepare's errors are fatal: an unreadable config, an invalid registry or
// an unusable api_base. Everything after startup degrades instead; poll
// failures turn the connectivity indicator offline and profile failures
// become status text.
package app
