// Package ui provides the Bubble Tea terminal front end for switchboard.
//
// # Architecture Overview
//
// Every field of the section registry gets a widget (controls.go,
// widgets.go) that implements the binder's control interfaces. The engine
// binds those widgets once; after that the model only forwards key presses
// to widgets and renders them. It never builds write payloads itself.
//
// # Threading
//
// Dispatcher implements engine.Dispatcher by sending runMsg values into the
// program, so engine continuations, debounce timers and snapshot renders all
// run inside Update. Model state, widgets and engine state are therefore only
// touched on the Bubble Tea update goroutine.
//
// # Tabs
//
//   - One tab per section, in registry order. Stateful sections list their
//     fields; static sections host the profile manager.
//   - A logs tab that follows the session log file.
//
// # Usage Example
//
//	controls := ui.NewControls(reg)
//	dispatcher := ui.NewDispatcher()
//	eng, err := engine.New(engine.Options{
//		Registry:   reg,
//		API:        client,
//		Controls:   controls,
//		Dispatcher: dispatcher,
//	})
//	...
//	err = ui.Run(ui.Options{
//		Context:    ctx,
//		Engine:     eng,
//		Controls:   controls,
//		Dispatcher: dispatcher,
//	})
package ui
