package persistence

import (
	"context"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	"github.com/google/uuid"
)

// UserRepository stores account owners
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrNotFound: If user with specified ID doesn't exist
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// Create creates a new user
	//
	// Possible errors:
	// - ErrDuplicateKey: If the ID or email is already registered
	Create(ctx context.Context, user *entity.User) error
}
