package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	Method    string
	Path      string
	Status    int
	Message   string // message or error from the body, else "HTTP <status>"
	RequestID string
}

// Error returns the human-readable message surfaced to the operator.
func (e *APIError) Error() string {
	return e.Message
}

// IsAPIError reports whether err carries an *APIError and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func newAPIError(method, path string, status int, requestID string, body []byte) *APIError {
	return &APIError{
		Method:    method,
		Path:      path,
		Status:    status,
		Message:   errorMessage(status, body),
		RequestID: requestID,
	}
}

// errorMessage prefers the body's message, then error, then a generic status
// string when neither is present or the body is not JSON.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message any `json:"message"`
		Error   any `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := messageText(payload.Message); msg != "" {
			return msg
		}
		if msg := messageText(payload.Error); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}

func messageText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case bool:
		if !val {
			return ""
		}
		return "true"
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}
