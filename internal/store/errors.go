package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrUnavailable is returned when the backing store cannot serve a request:
	// connectivity failures, timeouts, throttling, or a missing table.
	// Callers are expected to surface it as a server-side failure; the store
	// layer never retries.
	ErrUnavailable = errors.New("store unavailable")

	// ErrInvalidRecord is returned when a record cannot be written because it
	// breaks a store-level invariant (for example an empty primary key).
	ErrInvalidRecord = errors.New("invalid record")
)

// IsUnavailableError reports whether err is, or wraps, ErrUnavailable.
func IsUnavailableError(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Backend   string // The backend that failed (e.g., "dynamodb", "postgres")
	Operation string // The operation that failed (e.g., "get", "scan")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s %s failed: %s: %v",
			e.Backend,
			e.Operation,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Backend, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given backend, operation, message, and wrapped error.
func NewStoreError(backend, operation, message string, err error) *StoreError {
	return &StoreError{
		Backend:   backend,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// Unavailable wraps cause so that the result matches both ErrUnavailable and
// cause with errors.Is.
func Unavailable(backend, operation string, cause error) *StoreError {
	return NewStoreError(backend, operation, "store unavailable", errors.Join(ErrUnavailable, cause))
}
