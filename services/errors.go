package services

import (
	"errors"
	"fmt"

	"campusai/models"
)

var (
	// ErrEmptyMessage is returned for blank chat input. Callers ignore it silently.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrBusy is returned when a session already has a message in flight.
	ErrBusy = errors.New("a message is already being processed for this session")

	// ErrNotLoggedIn is returned when a session has no valid login record.
	ErrNotLoggedIn = errors.New("not logged in")
)

// ProviderError reports a failed call to a remote text-generation provider.
type ProviderError struct {
	Kind       models.ProviderKind
	Op         string // Operation that failed (e.g., "generateContent")
	StatusCode int    // Zero when no HTTP response was received
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	prefix := string(e.Kind)
	if e.Op != "" {
		prefix += " " + e.Op
	}
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %d %s", prefix, e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", prefix, e.Message)
	}
}

// Unwrap returns the underlying transport or decoding error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsProviderError reports whether err is or wraps a *ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
