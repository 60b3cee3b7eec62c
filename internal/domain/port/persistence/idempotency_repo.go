package persistence

import (
	"context"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	"github.com/google/uuid"
)

// IdempotencyRepository remembers the outcome of keyed transaction requests
type IdempotencyRepository interface {
	// Find returns the record stored for the caller and key
	//
	// Possible errors:
	// - ErrNotFound: If the key has not been used by this caller
	Find(ctx context.Context, userID uuid.UUID, key string) (*entity.IdempotencyRecord, error)

	// Create stores a record in the current unit of work
	//
	// Possible errors:
	// - ErrDuplicateKey: If a concurrent request already stored the key
	Create(ctx context.Context, record *entity.IdempotencyRecord) error
}
