package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the ledger reacts to
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
	sqlStateUniqueViolation      = "23505"
	sqlStateCheckViolation       = "23514"
	sqlStateForeignKeyViolation  = "23503"
	sqlStateNotNullViolation     = "23502"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError wraps a driver error as a *errs.StoreError for operation, tagging
// the cause with the matching domain sentinel where one applies
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var storeErr *errs.StoreError
	if errors.As(err, &storeErr) {
		return err
	}

	if sentinel := m.classify(err); sentinel != nil {
		return errs.NewStoreError(operation, fmt.Errorf("%w: %w", sentinel, err))
	}
	return errs.NewStoreError(operation, err)
}

func (m *ErrorMapper) classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
			return errs.ErrConcurrentModification
		case sqlStateUniqueViolation:
			return errs.ErrDuplicateKey
		case sqlStateCheckViolation, sqlStateForeignKeyViolation, sqlStateNotNullViolation:
			return errs.ErrConstraintViolation
		}
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errs.ErrDatabaseConnection
	}

	// Errors that lost their *pgconn.PgError on the way up
	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "could not serialize"):
		return errs.ErrConcurrentModification
	case strings.Contains(errMsg, "duplicate key"):
		return errs.ErrDuplicateKey
	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "connection reset"):
		return errs.ErrDatabaseConnection
	}
	return nil
}
