// Package store defines the persistence contract for task records.
// The TaskStore interface abstracts the underlying key-value store from the
// repository and service layers, so the same business rules run against
// DynamoDB, PostgreSQL, or the in-memory backend used in tests.
package store
