package transaction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
)

// MaxIdempotencyKeyLength bounds the Idempotency-Key header
const MaxIdempotencyKeyLength = 255

// TransactionValidator turns raw requests into NormalizedRequest values.
// Rules are checked in order and the first failure is returned.
type TransactionValidator struct{}

// NewTransactionValidator creates a new TransactionValidator
func NewTransactionValidator() *TransactionValidator {
	return &TransactionValidator{}
}

// Validate checks amount, description, type and account number, in that order
func (v *TransactionValidator) Validate(req entity.TransactionRequest) (NormalizedRequest, error) {
	amount, err := v.validateAmount(req)
	if err != nil {
		return NormalizedRequest{}, err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return NormalizedRequest{}, errs.NewValidationError("description", errs.RuleDescription, "Description is required")
	}

	kind, err := entity.ParseTransactionKind(req.Type)
	if err != nil {
		return NormalizedRequest{}, errs.NewValidationError("type", errs.RuleTransactionType, "Invalid transaction type")
	}

	movement, err := v.validateMovement(kind, strings.TrimSpace(req.AccountNumber))
	if err != nil {
		return NormalizedRequest{}, err
	}

	key := strings.TrimSpace(req.IdempotencyKey)
	if len(key) > MaxIdempotencyKeyLength {
		return NormalizedRequest{}, errs.NewValidationError("idempotencyKey", errs.RuleIdempotencyKey,
			fmt.Sprintf("Idempotency key must be at most %d characters", MaxIdempotencyKeyLength))
	}

	return NormalizedRequest{
		Amount:         amount,
		Description:    description,
		Movement:       movement,
		IdempotencyKey: key,
	}, nil
}

// validateAmount rounds the amount half-up to cents and requires a positive result
func (v *TransactionValidator) validateAmount(req entity.TransactionRequest) (entity.Cents, error) {
	if !req.Amount.Valid {
		return 0, errs.NewValidationError("amount", errs.RuleAmountRequired, "Amount must be a positive number")
	}

	cents, err := entity.CentsFromDecimal(req.Amount.Decimal)
	if errors.Is(err, errs.ErrAmountOverflow) {
		return 0, errs.NewValidationError("amount", errs.RuleAmountOverflow, "Amount is too large")
	}
	if err != nil {
		return 0, errs.NewValidationError("amount", errs.RuleAmountPositive, "Amount must be a positive number")
	}

	return cents, nil
}

func (v *TransactionValidator) validateMovement(kind entity.TransactionKind, accountNumber string) (Movement, error) {
	if kind != entity.KindDeposit && accountNumber == "" {
		return nil, errs.NewValidationError("accountNumber", errs.RuleAccountNumber,
			fmt.Sprintf("Account number is required for %s transactions", kind))
	}

	switch kind {
	case entity.KindWithdrawal:
		return Withdrawal{Reference: accountNumber}, nil
	case entity.KindTransfer:
		return Transfer{TargetAccountNumber: accountNumber}, nil
	default:
		return Deposit{}, nil
	}
}
