// Package config loads switchboard's TOML configuration.
//
// # Resolution
//
// Load reads the given path, or ~/.config/switchboard/config.toml when the
// path is empty. A missing file is not an error: Default is returned so the
// client works against a local remote without any setup. Fields that are
// absent, blank or non-positive keep their defaults.
//
// # Keys
//
//	api_base           = "127.0.0.1:8765"   # host:port or URL of the remote
//	poll_ms            = 0                  # 0 asks the remote's /meta
//	debounce_ms        = 200                # delay for slider writes
//	request_timeout_ms = 5000
//	registry           = "~/.config/switchboard/sections.yaml"
//	log_file           = "~/.local/state/switchboard/switchboard.log"
//	log_level          = "info"
//
// Paths accept a leading ~ and are made absolute.
//
// # Errors
//
// Load fails when the home directory cannot be resolved, the file cannot be
// read, or the TOML does not parse. Command-line flags override values
// loaded here; that merge happens in the app package.
package config
