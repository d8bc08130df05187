package dynamodb

import (
	"errors"

	"github.com/aws/aws-sdk-go/aws/awserr"

	"github.com/kishore-rajkumar/task-manager-api/internal/store"
)

const backendName = "dynamodb"

// validationExceptionCode is returned when an item does not fit the table or
// index key schema.
const validationExceptionCode = "ValidationException"

// MapError converts an SDK error into a store error.
//
// Validation failures reject the record itself and map to
// store.ErrInvalidRecord. Every other failure, including throttling, a
// missing table, timeouts and cancelled contexts, maps to store.ErrUnavailable.
func MapError(operation string, err error) error {
	if err == nil {
		return nil
	}

	var aerr awserr.Error
	if errors.As(err, &aerr) && aerr.Code() == validationExceptionCode {
		return store.NewStoreError(backendName, operation, aerr.Message(),
			errors.Join(store.ErrInvalidRecord, err))
	}

	return store.Unavailable(backendName, operation, err)
}

// errorCode extracts the AWS error code for logging, or "" for non-AWS errors.
func errorCode(err error) string {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		return aerr.Code()
	}
	return ""
}
