package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMapper_MapError(t *testing.T) {
	mapper := NewErrorMapper()

	testCases := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, errs.ErrConcurrentModification},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, errs.ErrConcurrentModification},
		{"lock timeout", &pgconn.PgError{Code: "55P03"}, errs.ErrConcurrentModification},
		{"unique violation", &pgconn.PgError{Code: "23505"}, errs.ErrDuplicateKey},
		{"check violation", &pgconn.PgError{Code: "23514"}, errs.ErrConstraintViolation},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, errs.ErrConstraintViolation},
		{"wrapped pg error", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "40001"}), errs.ErrConcurrentModification},
		{"deadlock message", errors.New("ERROR: deadlock detected"), errs.ErrConcurrentModification},
		{"connection refused", errors.New("dial tcp: connection refused"), errs.ErrDatabaseConnection},
		{"deadline", context.DeadlineExceeded, errs.ErrDatabaseConnection},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := mapper.MapError(tc.err, "execute")

			assert.ErrorIs(t, mapped, tc.sentinel)
			assert.ErrorIs(t, mapped, errs.ErrStore)
			assert.ErrorIs(t, mapped, tc.err)

			var storeErr *errs.StoreError
			require.ErrorAs(t, mapped, &storeErr)
			assert.Equal(t, "execute", storeErr.Op)
		})
	}
}

func TestErrorMapper_UnclassifiedError(t *testing.T) {
	mapper := NewErrorMapper()

	mapped := mapper.MapError(&pgconn.PgError{Code: "42P01", Message: "relation does not exist"}, "query")

	assert.ErrorIs(t, mapped, errs.ErrStore)
	assert.NotErrorIs(t, mapped, errs.ErrConcurrentModification)
	assert.Equal(t, errs.CodeStore, errs.ErrorCode(mapped))
	assert.False(t, errs.IsClientError(mapped))
}

func TestErrorMapper_ConcurrentModificationIsClientVisible(t *testing.T) {
	mapped := NewErrorMapper().MapError(&pgconn.PgError{Code: "40001"}, "commit")

	assert.Equal(t, errs.CodeConcurrentModification, errs.ErrorCode(mapped))
	assert.Equal(t, "CONCURRENT_MODIFICATION", errs.Kind(mapped))
}

func TestErrorMapper_PassesThroughStoreErrorsAndNil(t *testing.T) {
	mapper := NewErrorMapper()

	assert.NoError(t, mapper.MapError(nil, "query"))

	original := errs.NewStoreError("query", errors.New("boom"))
	assert.Same(t, original, mapper.MapError(original, "execute"))
}

func TestParseIsolationLevel(t *testing.T) {
	for input, want := range map[string]string{
		"":                "Serializable",
		"SERIALIZABLE":    "Serializable",
		"repeatable_read": "Repeatable Read",
		"read committed":  "Read Committed",
	} {
		level, err := ParseIsolationLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, level.String(), input)
	}

	_, err := ParseIsolationLevel("chaos")
	assert.Error(t, err)
}
