package repository

import (
	"context"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/banking-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/model"
	"github.com/google/uuid"
)

const transactionColumns = `id, type, amount, description, reference, created_at, account_id`

type countRow struct {
	Total int64
}

// TransactionRepository implements persistence.TransactionRepository on the ledger store
type TransactionRepository struct {
	store  persistence.Store
	logger coreport.Logger
}

var _ persistence.TransactionRepository = (*TransactionRepository)(nil)

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(store persistence.Store, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		store:  store,
		logger: logger,
	}
}

// modelToEntity converts a transaction model to an entity
func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	txn := &entity.Transaction{
		ID:          m.ID,
		Kind:        entity.TransactionKind(m.Kind),
		Amount:      entity.Cents(m.Amount),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		AccountID:   m.AccountID,
	}
	if m.Reference != nil {
		txn.Reference = *m.Reference
	}
	return txn
}

// Create appends a transaction row
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	var reference *string
	if transaction.Reference != "" {
		reference = &transaction.Reference
	}

	_, err := r.store.Execute(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		transaction.ID, string(transaction.Kind), int64(transaction.Amount), transaction.Description,
		reference, transaction.CreatedAt, transaction.AccountID)
	if err != nil {
		r.logger.Error("Failed to create transaction", map[string]any{
			"transaction_id": transaction.ID.String(),
			"account_id":     transaction.AccountID.String(),
			"error":          err.Error(),
		})
		return err
	}

	r.logger.Debug("Transaction created", map[string]any{
		"transaction_id": transaction.ID.String(),
		"account_id":     transaction.AccountID.String(),
		"type":           string(transaction.Kind),
	})
	return nil
}

// CountByAccount returns the number of transactions recorded for an account
func (r *TransactionRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var row countRow
	if _, err := r.store.QueryOne(ctx, &row,
		`SELECT COUNT(*) AS total FROM transactions WHERE account_id = ?`, accountID); err != nil {
		return 0, err
	}
	return row.Total, nil
}

// ListByAccount returns one page of transactions, newest first, latest insert first on ties
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*entity.Transaction, error) {
	var rows []model.Transaction
	if err := r.store.QueryMany(ctx, &rows, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE account_id = ?
		ORDER BY created_at DESC, seq DESC
		LIMIT ? OFFSET ?`, accountID, limit, offset); err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, 0, len(rows))
	for i := range rows {
		transactions = append(transactions, r.modelToEntity(&rows[i]))
	}
	return transactions, nil
}
