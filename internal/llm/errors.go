package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrUpstream indicates the provider answered with a non-success status.
type ErrUpstream struct {
	Provider   string
	StatusCode int
	// Message is the provider's own error message, when the body carried one.
	Message string
	Err     error
}

func (e *ErrUpstream) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s API error (%d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API error (%d)", e.Provider, e.StatusCode)
}

func (e *ErrUpstream) Unwrap() error { return e.Err }

// RateLimited reports whether the provider rejected the call with 429.
func (e *ErrUpstream) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// ErrTransport indicates the provider could not be reached at all:
// DNS, connection resets, timeouts, cancelled contexts.
type ErrTransport struct {
	Provider string
	Err      error
}

func (e *ErrTransport) Error() string {
	return fmt.Sprintf("%s request failed: network error: %v", e.Provider, e.Err)
}

func (e *ErrTransport) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }
