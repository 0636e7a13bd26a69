// Package section is the static registry of configuration sections.
//
// # Overview
//
// A section is a named group of tunable fields exposed by the remote process
// under /api/v1/state/{section}. Each field has a closed value kind that
// decides how raw control input is parsed and how remote values are written
// back into controls:
//
//   - Boolean: toggle control, written immediately
//   - Enum: selection control, written immediately
//   - RangedInt / RangedFloat: continuous control plus numeric readout,
//     debounced while dragging and immediate on readout commit
//
// Sections with Stateful=false (for example a profile/config tab) are never
// polled or written.
//
// # Registry Files
//
// The built-in registry (Default) can be replaced by a TOML or YAML file:
//
//	[[sections]]
//	id = "general"
//	title = "General"
//
//	  [[sections.fields]]
//	  key = "target_fps"
//	  kind = "int"
//	  min = 1
//	  max = 240
//	  step = 1
//
// Files are validated with go-playground/validator before use: section ids
// and field keys must be present and unique, max must not be below min.
//
// The registry is immutable once built and safe for concurrent reads.
package section
