package evaluation

import (
	"errors"
	"fmt"
)

// RequestErrorKind classifies a rejected request.
type RequestErrorKind int

const (
	KindInvalidInput RequestErrorKind = iota + 1
	KindInvalidStrategy
)

func (k RequestErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindInvalidStrategy:
		return "invalid_strategy"
	}
	return "unknown"
}

// RequestError is returned when a request fails validation. Message is the
// user-facing text.
type RequestError struct {
	Kind    RequestErrorKind
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RequestError) Unwrap() error { return e.Err }

var (
	// ErrMissingCredential is returned when no upstream provider could be
	// configured because its API key is absent.
	ErrMissingCredential = errors.New("evaluation: upstream credential is not configured")

	// ErrIncomplete is returned when the final evaluation still lacks a
	// required field after parse-or-fallback.
	ErrIncomplete = errors.New("evaluation: incomplete evaluation")
)
