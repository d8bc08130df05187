// Package memory provides an in-memory implementation of store.TaskStore.
// It backs local development and the repository and service tests, and
// mirrors the observable contract of the managed backends: upsert on Put,
// idempotent Delete, a raw limit on Scan, and exact-match status queries.
package memory

import (
	"context"
	"sync"

	"github.com/kishore-rajkumar/task-manager-api/internal/store"
)

// Compile-time check to ensure TaskStore implements store.TaskStore.
var _ store.TaskStore = (*TaskStore)(nil)

// TaskStore keeps records in a map guarded by a RWMutex. Insertion order is
// tracked so Scan results are stable between calls, which keeps limit
// behaviour predictable in tests.
type TaskStore struct {
	mu      sync.RWMutex
	records map[string]store.Record
	order   []string

	// failWith, when set, is returned (wrapped as unavailable) by every call.
	failWith error
}

// NewTaskStore creates an empty TaskStore.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		records: make(map[string]store.Record),
	}
}

// NewTaskStoreWith creates a TaskStore pre-populated with records, in order.
func NewTaskStoreWith(records ...store.Record) *TaskStore {
	s := NewTaskStore()
	for _, r := range records {
		s.put(r)
	}
	return s
}

// FailWith makes every subsequent call fail with cause wrapped as
// store.ErrUnavailable. Passing nil restores normal behaviour.
func (s *TaskStore) FailWith(cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = cause
}

// Len returns the number of stored records.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *TaskStore) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return store.Unavailable("memory", op, err)
	}
	if s.failWith != nil {
		return store.Unavailable("memory", op, s.failWith)
	}
	return nil
}

// Get returns a copy of the record with the given ID, or nil if absent.
func (s *TaskStore) Get(ctx context.Context, id string) (*store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check(ctx, "get"); err != nil {
		return nil, err
	}

	r, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// Put stores the record, replacing any existing record with the same ID.
func (s *TaskStore) Put(ctx context.Context, record store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(ctx, "put"); err != nil {
		return err
	}
	if record.ID == "" {
		return store.NewStoreError("memory", "put", "record has no id", store.ErrInvalidRecord)
	}

	s.put(record)
	return nil
}

func (s *TaskStore) put(record store.Record) {
	if _, exists := s.records[record.ID]; !exists {
		s.order = append(s.order, record.ID)
	}
	s.records[record.ID] = record
}

// Delete removes the record with the given ID. Missing IDs are ignored.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(ctx, "delete"); err != nil {
		return err
	}

	if _, ok := s.records[id]; !ok {
		return nil
	}
	delete(s.records, id)
	for i, key := range s.order {
		if key == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Scan returns records in insertion order, at most limit of them when limit > 0.
func (s *TaskStore) Scan(ctx context.Context, limit int) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check(ctx, "scan"); err != nil {
		return nil, err
	}

	n := len(s.order)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]store.Record, 0, n)
	for _, id := range s.order[:n] {
		out = append(out, s.records[id])
	}
	return out, nil
}

// QueryByStatus returns records whose status equals status exactly.
func (s *TaskStore) QueryByStatus(ctx context.Context, status string) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.check(ctx, "query"); err != nil {
		return nil, err
	}

	out := make([]store.Record, 0)
	for _, id := range s.order {
		if r := s.records[id]; r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}
