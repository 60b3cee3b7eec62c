package usecase

import (
	"context"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	"github.com/google/uuid"
)

// TransactionUseCase defines the operations available on the ledger
type TransactionUseCase interface {
	// Submit validates and applies a deposit, withdrawal or transfer for the caller
	Submit(ctx context.Context, userID uuid.UUID, request entity.TransactionRequest) (*entity.TransactionResult, error)

	// History returns one page of the caller's transactions, newest first
	History(ctx context.Context, userID uuid.UUID, page, pageSize int) (*entity.TransactionPage, error)
}
