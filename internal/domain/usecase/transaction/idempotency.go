package transaction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/banking-ledger/internal/domain/port/persistence"
	"github.com/google/uuid"
)

// IdempotencyHandler replays the stored result of a keyed request.
// Both methods must run inside the unit of work that applies the request.
type IdempotencyHandler struct {
	repo         persistence.IdempotencyRepository
	timeProvider coreport.TimeProvider
}

// NewIdempotencyHandler creates a new IdempotencyHandler
func NewIdempotencyHandler(repo persistence.IdempotencyRepository, timeProvider coreport.TimeProvider) *IdempotencyHandler {
	return &IdempotencyHandler{
		repo:         repo,
		timeProvider: timeProvider,
	}
}

// Fingerprint hashes the fields that make two requests the same request
func Fingerprint(req NormalizedRequest) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s|%s",
		req.Kind(), req.Amount, req.Description, req.counterparty())))
	return hex.EncodeToString(sum[:])
}

// Lookup returns the stored result for the request's key.
// A key reused with a different request fails with ErrIdempotencyMismatch.
func (h *IdempotencyHandler) Lookup(
	ctx context.Context,
	userID uuid.UUID,
	req NormalizedRequest,
) (*entity.TransactionResult, bool, error) {
	record, err := h.repo.Find(ctx, userID, req.IdempotencyKey)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up idempotency key: %w", err)
	}

	if record.RequestHash != Fingerprint(req) {
		return nil, true, fmt.Errorf("%w: %s", errs.ErrIdempotencyMismatch, req.IdempotencyKey)
	}

	var result entity.TransactionResult
	if err := json.Unmarshal(record.Response, &result); err != nil {
		return nil, true, errs.NewStoreError("decode idempotent response", err)
	}
	result.Replayed = true

	return &result, true, nil
}

// Remember stores the result under the request's key
func (h *IdempotencyHandler) Remember(
	ctx context.Context,
	userID uuid.UUID,
	req NormalizedRequest,
	result *entity.TransactionResult,
) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return errs.NewStoreError("encode idempotent response", err)
	}

	err = h.repo.Create(ctx, &entity.IdempotencyRecord{
		UserID:      userID,
		Key:         req.IdempotencyKey,
		RequestHash: Fingerprint(req),
		Response:    payload,
		CreatedAt:   h.timeProvider.Now(),
	})
	if errors.Is(err, errs.ErrDuplicateKey) {
		return fmt.Errorf("%w: %s", errs.ErrIdempotencyInProgress, req.IdempotencyKey)
	}

	return err
}
