package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	"github.com/google/uuid"
)

// TransactionKind is the type of a ledger movement
type TransactionKind string

// Transaction kinds
const (
	KindDeposit    TransactionKind = "DEPOSIT"
	KindWithdrawal TransactionKind = "WITHDRAWAL"
	KindTransfer   TransactionKind = "TRANSFER"
)

// ParseTransactionKind validates a kind name, case-insensitively
func ParseTransactionKind(value string) (TransactionKind, error) {
	switch kind := TransactionKind(strings.ToUpper(strings.TrimSpace(value))); kind {
	case KindDeposit, KindWithdrawal, KindTransfer:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: unknown transaction type %q", errs.ErrValidation, value)
	}
}

// IsCredit returns true if rows of this kind increase the account balance
func (k TransactionKind) IsCredit() bool {
	return k == KindDeposit
}

// Transaction is an immutable history row attached to one account.
// A transfer produces two rows: a TRANSFER on the source and a DEPOSIT on the target.
type Transaction struct {
	ID          uuid.UUID
	Kind        TransactionKind
	Amount      Cents
	Description string
	Reference   string // counterparty or external account number, if any
	CreatedAt   time.Time
	AccountID   uuid.UUID
}

// NewTransaction creates a history row with a fresh id
func NewTransaction(
	accountID uuid.UUID,
	kind TransactionKind,
	amount Cents,
	description string,
	reference string,
	createdAt time.Time,
) (*Transaction, error) {
	if accountID == uuid.Nil {
		return nil, fmt.Errorf("%w: account is required", errs.ErrValidation)
	}
	if _, err := ParseTransactionKind(string(kind)); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: must be greater than zero", errs.ErrInvalidAmount)
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: description is required", errs.ErrValidation)
	}

	return &Transaction{
		ID:          uuid.New(),
		Kind:        kind,
		Amount:      amount,
		Description: description,
		Reference:   reference,
		CreatedAt:   createdAt,
		AccountID:   accountID,
	}, nil
}

// SignedAmount returns the balance effect of this row on its own account
func (t *Transaction) SignedAmount() Cents {
	if t.Kind.IsCredit() {
		return t.Amount
	}
	return -t.Amount
}
