package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/banking-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/model"
	"github.com/google/uuid"
)

const accountColumns = `id, account_number, account_type, balance, account_holder, created_at, user_id`

// accountDetailsRow is an account joined with its owner
type accountDetailsRow struct {
	ID            uuid.UUID
	AccountNumber string
	AccountType   string
	Balance       int64
	AccountHolder string
	CreatedAt     time.Time
	UserID        uuid.UUID
	OwnerName     string
	OwnerEmail    string
}

// AccountRepository implements persistence.AccountRepository on the ledger store
type AccountRepository struct {
	store  persistence.Store
	logger coreport.Logger
}

var _ persistence.AccountRepository = (*AccountRepository)(nil)

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(store persistence.Store, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		store:  store,
		logger: logger,
	}
}

// modelToEntity converts an account model to an entity
func (r *AccountRepository) modelToEntity(m *model.Account) *entity.Account {
	return &entity.Account{
		ID:            m.ID,
		AccountNumber: m.AccountNumber,
		AccountType:   entity.AccountType(m.AccountType),
		Balance:       entity.Cents(m.Balance),
		AccountHolder: m.AccountHolder,
		CreatedAt:     m.CreatedAt,
		UserID:        m.UserID,
	}
}

func (r *AccountRepository) queryAccount(ctx context.Context, statement string, param any) (*entity.Account, error) {
	var row model.Account
	found, err := r.store.QueryOne(ctx, &row, statement, param)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.ErrAccountNotFound
	}
	return r.modelToEntity(&row), nil
}

// GetByOwner returns the account owned by the given user
func (r *AccountRepository) GetByOwner(ctx context.Context, userID uuid.UUID) (*entity.Account, error) {
	return r.queryAccount(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE user_id = ? LIMIT 1`, userID)
}

// GetByNumber returns the account with the given public account number
func (r *AccountRepository) GetByNumber(ctx context.Context, accountNumber string) (*entity.Account, error) {
	return r.queryAccount(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE account_number = ?`, accountNumber)
}

// LockByID re-reads the account and locks its row until the unit of work ends
func (r *AccountRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	r.logger.Debug("Locking account", map[string]any{"account_id": id.String()})

	return r.queryAccount(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ? FOR UPDATE`, id)
}

// GetDetailsByOwner returns the caller's account joined with the owner's profile
func (r *AccountRepository) GetDetailsByOwner(ctx context.Context, userID uuid.UUID) (*entity.AccountDetails, error) {
	var row accountDetailsRow
	found, err := r.store.QueryOne(ctx, &row, `
		SELECT a.id, a.account_number, a.account_type, a.balance, a.account_holder, a.created_at, a.user_id,
		       u.name AS owner_name, u.email AS owner_email
		FROM accounts a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = ?
		LIMIT 1`, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.ErrAccountNotFound
	}

	return &entity.AccountDetails{
		Account: entity.Account{
			ID:            row.ID,
			AccountNumber: row.AccountNumber,
			AccountType:   entity.AccountType(row.AccountType),
			Balance:       entity.Cents(row.Balance),
			AccountHolder: row.AccountHolder,
			CreatedAt:     row.CreatedAt,
			UserID:        row.UserID,
		},
		OwnerName:  row.OwnerName,
		OwnerEmail: row.OwnerEmail,
	}, nil
}

// ApplyDelta adds delta cents to the balance. The non-negative check constraint
// rejects an update that would overdraw the account.
func (r *AccountRepository) ApplyDelta(ctx context.Context, id uuid.UUID, delta entity.Cents) error {
	affected, err := r.store.Execute(ctx,
		`UPDATE accounts SET balance = balance + ? WHERE id = ?`, int64(delta), id)
	if err != nil {
		r.logger.Error("Failed to update balance", map[string]any{
			"account_id": id.String(),
			"delta":      delta.String(),
			"error":      err.Error(),
		})
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", errs.ErrAccountNotFound, id)
	}
	return nil
}

// Create inserts a new account
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	_, err := r.store.Execute(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		account.ID, account.AccountNumber, string(account.AccountType), int64(account.Balance),
		account.AccountHolder, account.CreatedAt, account.UserID)
	if err != nil {
		return err
	}

	r.logger.Debug("Account created", map[string]any{
		"account_id":     account.ID.String(),
		"account_number": account.AccountNumber,
	})
	return nil
}
