package domain

import (
	"fmt"
	"strings"
)

// Task is the single entity managed by the API.
//
// Status is a free-form label. No set of values or transitions is enforced;
// it is only used as a filter predicate, compared case-insensitively.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Validate checks the invariants every persisted task must satisfy.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	return nil
}

// HasStatus reports whether the task's status equals status, ignoring case.
func (t *Task) HasStatus(status string) bool {
	return strings.EqualFold(t.Status, status)
}

// Clone returns a copy of the task so callers cannot mutate shared state.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// ListFilter carries the optional parameters of a list request.
// A nil field means the parameter is absent.
type ListFilter struct {
	Status *string
	Limit  *int
}

// ListOption configures a ListFilter.
type ListOption func(*ListFilter)

// WithStatus restricts the listing to tasks whose status matches, ignoring case.
func WithStatus(status string) ListOption {
	return func(f *ListFilter) {
		f.Status = &status
	}
}

// WithLimit caps the number of records read from the store.
func WithLimit(limit int) ListOption {
	return func(f *ListFilter) {
		f.Limit = &limit
	}
}

// NewListFilter builds a ListFilter from the given options.
// With no options every task is listed.
func NewListFilter(opts ...ListOption) ListFilter {
	var f ListFilter
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// HasStatus reports whether a status filter is present.
func (f ListFilter) HasStatus() bool {
	return f.Status != nil
}

// HasLimit reports whether a limit is present.
func (f ListFilter) HasLimit() bool {
	return f.Limit != nil
}

// Validate rejects a present but non-positive limit.
func (f ListFilter) Validate() error {
	if f.Limit != nil && *f.Limit < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, *f.Limit)
	}
	return nil
}

// String renders the filter for log output.
func (f ListFilter) String() string {
	status, limit := "<none>", "<none>"
	if f.Status != nil {
		status = *f.Status
	}
	if f.Limit != nil {
		limit = fmt.Sprintf("%d", *f.Limit)
	}
	return fmt.Sprintf("status=%s limit=%s", status, limit)
}
