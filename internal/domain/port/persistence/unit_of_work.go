package persistence

import (
	"context"
)

// UnitOfWork scopes a group of Store calls into one atomic database transaction
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context.
	// Nested units of work are not supported.
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context.
	// Rolling back a finished transaction is a no-op.
	Rollback(ctx context.Context) error
}
