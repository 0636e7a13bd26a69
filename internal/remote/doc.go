// Package remote is the HTTP client for the controlled process's /api/v1
// API.
//
// # Endpoints
//
//	GET   /meta                 version and poll_ms
//	GET   /state/{section}      full snapshot of one section
//	PATCH /state/{section}      partial update, answers with the full snapshot
//	GET   /configs              saved profile names
//	POST  /configs/load         {name}
//	POST  /configs/save-new     {name}, answers with the stored name
//	POST  /actions/save-config  {}
//
// Every request carries an X-Request-ID that also appears in the debug log,
// so a failing call can be matched with the remote's own logs.
//
// # Errors
//
// A non-2xx response becomes *APIError. Its message is the body's message or
// error field, else "HTTP <status>". Transport failures are wrapped with %w.
// A 2xx body that is empty or not JSON is logged and carries no data.
//
// # Numbers
//
// Responses are decoded with json.Number so values render exactly as the
// remote sent them.
package remote
