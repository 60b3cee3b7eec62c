package persistence

import "context"

// Store executes parameterized statements against the ledger database.
// Calls made with a context returned by UnitOfWork.Begin run inside that unit of work.
//
// Statements use ? placeholders. Failures are returned as *errs.StoreError; a
// conflicting concurrent transaction additionally matches errs.ErrConcurrentModification
// and a unique violation errs.ErrDuplicateKey.
type Store interface {
	// Execute runs a statement and returns the number of affected rows
	Execute(ctx context.Context, statement string, params ...any) (int64, error)

	// QueryOne scans the first row into dest and reports whether a row was found
	QueryOne(ctx context.Context, dest any, statement string, params ...any) (bool, error)

	// QueryMany scans all rows into dest, which must be a pointer to a slice
	QueryMany(ctx context.Context, dest any, statement string, params ...any) error
}
