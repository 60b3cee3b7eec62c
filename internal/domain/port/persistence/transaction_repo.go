package persistence

import (
	"context"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	"github.com/google/uuid"
)

// TransactionRepository stores the append-only transaction history
type TransactionRepository interface {
	// Create appends a transaction row. Rows are never updated or deleted afterwards.
	//
	// Possible errors:
	// - ErrConstraintViolation: If the referenced account does not exist
	// - ErrStore: If the insert fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// CountByAccount returns the number of transactions recorded for an account
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)

	// ListByAccount returns one page of transactions, newest first.
	// Rows with equal timestamps are ordered by insertion sequence, latest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entity.Transaction, error)
}
