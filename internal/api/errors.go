package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kishore-rajkumar/task-manager-api/internal/domain"
	"github.com/kishore-rajkumar/task-manager-api/internal/service"
	"github.com/kishore-rajkumar/task-manager-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidLimit):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound

	// The store refused the record itself, e.g. an oversized item or a value
	// the column cannot hold. Retrying the same body will not help.
	case errors.Is(err, store.ErrInvalidRecord):
		return http.StatusBadRequest

	// The store could not serve the request: a server-side condition the
	// client may retry later.
	case store.IsUnavailableError(err):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrInvalidLimit):
		return "Limit must be a positive integer"
	case errors.Is(err, service.ErrInvalidInput):
		return "Invalid input"
	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrInvalidRecord):
		return "Task rejected by store"
	case store.IsUnavailableError(err):
		return "Task store is unavailable"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "number", "numeric":
		return "must be a positive integer"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
