package usecase

import (
	"context"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	"github.com/google/uuid"
)

// AccountUseCase defines account operations
type AccountUseCase interface {
	// GetAccount returns the caller's account with owner details
	GetAccount(ctx context.Context, userID uuid.UUID) (*entity.AccountDetails, error)

	// OpenAccount registers an owner and their account in one unit of work
	OpenAccount(ctx context.Context, request entity.OpenAccountRequest) (*entity.Account, error)
}
