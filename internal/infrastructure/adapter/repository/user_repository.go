package repository

import (
	"context"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/banking-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/model"
	"github.com/google/uuid"
)

// UserRepository implements persistence.UserRepository on the ledger store
type UserRepository struct {
	store  persistence.Store
	logger coreport.Logger
}

var _ persistence.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(store persistence.Store, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		store:  store,
		logger: logger,
	}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var row model.User
	found, err := r.store.QueryOne(ctx, &row,
		`SELECT id, name, email, created_at FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.ErrNotFound
	}

	return &entity.User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
	}, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	if _, err := r.store.Execute(ctx,
		`INSERT INTO users (id, name, email, created_at) VALUES (?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.CreatedAt); err != nil {
		r.logger.Warn("Failed to create user", map[string]any{
			"user_id": user.ID.String(),
			"error":   err.Error(),
		})
		return err
	}

	r.logger.Debug("User created", map[string]any{"user_id": user.ID.String()})
	return nil
}
