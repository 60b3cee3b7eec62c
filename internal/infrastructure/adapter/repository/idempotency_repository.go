package repository

import (
	"context"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/banking-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/model"
	"github.com/google/uuid"
)

// IdempotencyRepository implements persistence.IdempotencyRepository on the ledger store
type IdempotencyRepository struct {
	store persistence.Store
}

var _ persistence.IdempotencyRepository = (*IdempotencyRepository)(nil)

// NewIdempotencyRepository creates a new IdempotencyRepository instance
func NewIdempotencyRepository(store persistence.Store) *IdempotencyRepository {
	return &IdempotencyRepository{store: store}
}

// Find returns the record stored for the caller and key
func (r *IdempotencyRepository) Find(ctx context.Context, userID uuid.UUID, key string) (*entity.IdempotencyRecord, error) {
	var row model.IdempotencyKey
	found, err := r.store.QueryOne(ctx, &row, `
		SELECT user_id, key, request_hash, response, created_at
		FROM idempotency_keys
		WHERE user_id = ? AND key = ?`, userID, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.ErrNotFound
	}

	return &entity.IdempotencyRecord{
		UserID:      row.UserID,
		Key:         row.Key,
		RequestHash: row.RequestHash,
		Response:    row.Response,
		CreatedAt:   row.CreatedAt,
	}, nil
}

// Create stores a record in the current unit of work
func (r *IdempotencyRepository) Create(ctx context.Context, record *entity.IdempotencyRecord) error {
	_, err := r.store.Execute(ctx, `
		INSERT INTO idempotency_keys (user_id, key, request_hash, response, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		record.UserID, record.Key, record.RequestHash, record.Response, record.CreatedAt)
	return err
}
