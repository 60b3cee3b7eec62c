package transaction

import "github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"

// Movement is the kind-specific part of a validated request
type Movement interface {
	Kind() entity.TransactionKind
	isMovement()
}

// Deposit credits the caller's account
type Deposit struct{}

// Withdrawal debits the caller's account. Reference is the external account
// the funds are paid out to and is kept on the history row.
type Withdrawal struct {
	Reference string
}

// Transfer moves funds from the caller's account to another ledger account
type Transfer struct {
	TargetAccountNumber string
}

func (Deposit) Kind() entity.TransactionKind    { return entity.KindDeposit }
func (Withdrawal) Kind() entity.TransactionKind { return entity.KindWithdrawal }
func (Transfer) Kind() entity.TransactionKind   { return entity.KindTransfer }

func (Deposit) isMovement()    {}
func (Withdrawal) isMovement() {}
func (Transfer) isMovement()   {}

// NormalizedRequest is a request that passed validation.
// Amount is in cents and Description is trimmed.
type NormalizedRequest struct {
	Amount         entity.Cents
	Description    string
	Movement       Movement
	IdempotencyKey string
}

// Kind returns the transaction kind of the request
func (r NormalizedRequest) Kind() entity.TransactionKind {
	if r.Movement == nil {
		return ""
	}
	return r.Movement.Kind()
}

// counterparty returns the account number named by the request, if any
func (r NormalizedRequest) counterparty() string {
	switch m := r.Movement.(type) {
	case Withdrawal:
		return m.Reference
	case Transfer:
		return m.TargetAccountNumber
	default:
		return ""
	}
}
