// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyID is returned when a task is about to be persisted without an ID.
	ErrEmptyID = errors.New("task ID cannot be empty")

	// ErrInvalidLimit is returned when a list limit is present but not positive.
	ErrInvalidLimit = errors.New("limit must be greater than zero")
)
