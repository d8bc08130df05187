package store

import "context"

// Record is the persisted layout of a task: one record per task, keyed by ID,
// with Status doubling as the secondary index key.
type Record struct {
	ID          string
	Title       string
	Description string
	Status      string
}

// TaskStore defines the interface for task record persistence against a
// key-value store with a primary key and one secondary index on status.
//
// Implementations report backend failures wrapped in ErrUnavailable and never
// retry. Absence is not an error.
type TaskStore interface {
	// Get retrieves a record by primary key.
	// Returns (nil, nil) when no record exists.
	Get(ctx context.Context, id string) (*Record, error)

	// Put writes the record, replacing any existing record with the same ID in full.
	Put(ctx context.Context, record Record) error

	// Delete removes the record with the given ID.
	// Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Scan reads records without using an index. A limit greater than zero
	// caps the raw read at that many records in a single request; zero or
	// less reads every record. Order is store-defined.
	Scan(ctx context.Context, limit int) ([]Record, error)

	// QueryByStatus returns the records whose status equals status exactly,
	// using the secondary index.
	QueryByStatus(ctx context.Context, status string) ([]Record, error)
}
