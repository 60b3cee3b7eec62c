package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRequest is a caller's unvalidated request to move money
type TransactionRequest struct {
	Amount         decimal.NullDecimal
	Description    string
	Type           string
	AccountNumber  string
	IdempotencyKey string
}

// TransactionResult summarizes a committed request. It is also the payload
// replayed for a repeated idempotency key, hence the JSON tags.
type TransactionResult struct {
	Message       string          `json:"message"`
	Kind          TransactionKind `json:"kind"`
	TransactionID uuid.UUID       `json:"transactionId"`
	NewBalance    Cents           `json:"newBalance"`
	TargetAccount string          `json:"targetAccount,omitempty"`

	TargetTransactionID uuid.UUID `json:"targetTransactionId,omitempty"`
	TargetNewBalance    Cents     `json:"targetNewBalance,omitempty"`

	Replayed bool `json:"-"`
}

// IsTransfer reports whether the result carries a counterparty
func (r *TransactionResult) IsTransfer() bool {
	return r.Kind == KindTransfer
}
