package shared

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is the type of the context keys owned by this package.
type ContextKey string

const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDHeader carries a caller-supplied trace ID in and the effective one out.
	TraceIDHeader = "X-Trace-Id"
)

// traceIDPattern bounds what an inbound trace ID may contain before it is
// echoed into logs and response bodies.
var traceIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{8,128}$`)

// NewTraceID returns a random 32-character hex trace ID.
func NewTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ValidTraceID reports whether id is acceptable as an inbound trace ID.
func ValidTraceID(id string) bool {
	return traceIDPattern.MatchString(id)
}

// WithTraceID adds traceID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// SetTraceID adds a freshly generated trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, NewTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
