package mocks

import (
	"context"
	"sync"

	"github.com/kishore-rajkumar/task-manager-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// Unset function fields fall back to returning DefaultError with zero values.
type MockTaskStore struct {
	GetFn           func(ctx context.Context, id string) (*store.Record, error)
	PutFn           func(ctx context.Context, record store.Record) error
	DeleteFn        func(ctx context.Context, id string) error
	ScanFn          func(ctx context.Context, limit int) ([]store.Record, error)
	QueryByStatusFn func(ctx context.Context, status string) ([]store.Record, error)

	// DefaultError is returned by any method without a custom function.
	DefaultError error

	mu    sync.Mutex
	calls []string
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, op)
}

// Calls returns the names of the methods invoked so far, in order.
func (m *MockTaskStore) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Get implements store.TaskStore
func (m *MockTaskStore) Get(ctx context.Context, id string) (*store.Record, error) {
	m.record("Get")
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, m.DefaultError
}

// Put implements store.TaskStore
func (m *MockTaskStore) Put(ctx context.Context, record store.Record) error {
	m.record("Put")
	if m.PutFn != nil {
		return m.PutFn(ctx, record)
	}
	return m.DefaultError
}

// Delete implements store.TaskStore
func (m *MockTaskStore) Delete(ctx context.Context, id string) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.DefaultError
}

// Scan implements store.TaskStore
func (m *MockTaskStore) Scan(ctx context.Context, limit int) ([]store.Record, error) {
	m.record("Scan")
	if m.ScanFn != nil {
		return m.ScanFn(ctx, limit)
	}
	return nil, m.DefaultError
}

// QueryByStatus implements store.TaskStore
func (m *MockTaskStore) QueryByStatus(ctx context.Context, status string) ([]store.Record, error) {
	m.record("QueryByStatus")
	if m.QueryByStatusFn != nil {
		return m.QueryByStatusFn(ctx, status)
	}
	return nil, m.DefaultError
}
