package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var fieldValidator = validator.New()

// User owns exactly one account. Credentials are managed by the identity provider.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
}

// NewUser creates a user. A nil id is replaced with a fresh one.
func NewUser(id uuid.UUID, name, email string, timeProvider coreport.TimeProvider) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", errs.ErrValidation)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if err := fieldValidator.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: invalid email %q", errs.ErrValidation, email)
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	return &User{
		ID:        id,
		Name:      name,
		Email:     email,
		CreatedAt: timeProvider.Now(),
	}, nil
}
