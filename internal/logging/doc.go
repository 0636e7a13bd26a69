// Package logging provides the process-wide zap logger.
//
// Logging is silent unless a level is configured (flag, config file, or the
// SWITCHBOARD_LOG_LEVEL environment variable). In TUI mode the logger writes
// to a file because the terminal belongs to Bubble Tea; headless mode and CLI
// subcommands log to stderr.
//
// Components take a named child logger (Named("engine"), Named("scheduler"))
// when they log often; one-off call sites use the package helpers.
package logging
