package persistence

import (
	"context"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	"github.com/google/uuid"
)

// AccountRepository reads and mutates account rows
type AccountRepository interface {
	// GetByOwner returns the account owned by the given user
	//
	// Possible errors:
	// - ErrAccountNotFound: If the user has no account
	// - ErrStore: If the query fails
	GetByOwner(ctx context.Context, userID uuid.UUID) (*entity.Account, error)

	// GetByNumber returns the account with the given public account number
	//
	// Possible errors:
	// - ErrAccountNotFound: If no account carries that number
	// - ErrStore: If the query fails
	GetByNumber(ctx context.Context, accountNumber string) (*entity.Account, error)

	// GetDetailsByOwner returns the caller's account joined with the owner's profile
	//
	// Possible errors:
	// - ErrAccountNotFound: If the user has no account
	// - ErrStore: If the query fails
	GetDetailsByOwner(ctx context.Context, userID uuid.UUID) (*entity.AccountDetails, error)

	// LockByID reads the account and holds a row lock on it until the unit of work ends.
	// Must be called within a unit of work.
	//
	// Possible errors:
	// - ErrAccountNotFound: If the account no longer exists
	// - ErrConcurrentModification: If the lock cannot be taken
	LockByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// ApplyDelta adds delta cents to the account balance
	//
	// Possible errors:
	// - ErrAccountNotFound: If no row was updated
	// - ErrConstraintViolation: If the balance would become negative
	ApplyDelta(ctx context.Context, id uuid.UUID, delta entity.Cents) error

	// Create inserts a new account
	//
	// Possible errors:
	// - ErrDuplicateKey: If the account number is taken
	Create(ctx context.Context, account *entity.Account) error
}
