// Package postgres provides a PostgreSQL implementation of store.TaskStore.
// A single tasks table stands in for the key-value layout: id is the primary
// key and a btree index on status plays the role of the secondary index.
// Connections go through database/sql with the pgx stdlib driver.
package postgres
