package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUnavailableError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "ErrUnavailable",
			err:      ErrUnavailable,
			expected: true,
		},
		{
			name:     "wrapped ErrUnavailable",
			err:      fmt.Errorf("scan: %w", ErrUnavailable),
			expected: true,
		},
		{
			name:     "StoreError built by Unavailable",
			err:      Unavailable("dynamodb", "get", errors.New("connection reset")),
			expected: true,
		},
		{
			name:     "StoreError without ErrUnavailable",
			err:      NewStoreError("memory", "put", "bad record", ErrInvalidRecord),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsUnavailableError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("i/o timeout")

	t.Run("with wrapped error", func(t *testing.T) {
		err := NewStoreError("postgres", "scan", "query failed", cause)
		assert.Equal(t, "postgres scan failed: query failed: i/o timeout", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewStoreError("postgres", "scan", "query failed", nil)
		assert.Equal(t, "postgres scan failed: query failed", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("Unavailable keeps both sentinels", func(t *testing.T) {
		err := Unavailable("dynamodb", "put", cause)
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.ErrorIs(t, err, cause)

		var storeErr *StoreError
		assert.True(t, errors.As(err, &storeErr))
		assert.Equal(t, "dynamodb", storeErr.Backend)
		assert.Equal(t, "put", storeErr.Operation)
	})
}
