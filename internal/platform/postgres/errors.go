package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kishore-rajkumar/task-manager-api/internal/store"
)

const backendName = "postgres"

// PostgreSQL error codes
const (
	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"

	// stringTooLongCode is raised when a value exceeds a column's length.
	stringTooLongCode = "22001"

	// invalidByteSequenceCode is raised for text the server encoding cannot
	// store, such as a NUL character.
	invalidByteSequenceCode = "22021"
)

// MapError converts a database error into a store error.
//
// Constraint violations and unstorable values mean the record itself was
// rejected and map to store.ErrInvalidRecord. Everything else, from
// connection failures to a missing table, is reported as store.ErrUnavailable;
// connection failures carry their own message so logs tell them apart.
func MapError(operation string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case notNullViolationCode, checkViolationCode, stringTooLongCode:
			return store.NewStoreError(backendName, operation, "record rejected by constraint "+pgErr.ConstraintName,
				errors.Join(store.ErrInvalidRecord, err))
		case invalidByteSequenceCode:
			return store.NewStoreError(backendName, operation, "record contains an invalid byte sequence",
				errors.Join(store.ErrInvalidRecord, err))
		}
	}

	if IsConnectionError(err) {
		return store.NewStoreError(backendName, operation, "database connection lost",
			errors.Join(store.ErrUnavailable, err))
	}

	return store.Unavailable(backendName, operation, err)
}

// IsConnectionError reports whether err is a PostgreSQL connection exception
// (SQLSTATE class 08) or an operator intervention such as admin shutdown
// (class 57).
func IsConnectionError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || len(pgErr.Code) < 2 {
		return false
	}
	class := pgErr.Code[:2]
	return class == "08" || class == "57"
}
