package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation             = 4001
	CodeInsufficientFunds      = 4002
	CodeSelfTransfer           = 4003
	CodeInvalidPagination      = 4004
	CodeUnauthenticated        = 4010
	CodeAccountNotFound        = 4040
	CodeTargetAccountNotFound  = 4041
	CodeConcurrentModification = 4090
	CodeIdempotencyInProgress  = 4091
	CodeIdempotencyMismatch    = 4220

	// 5xxx - Server errors
	CodeInternalServer = 5000
	CodeStore          = 5001
)

// Base error types
var (
	// ErrValidation is returned when a transaction request fails validation
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAmount is returned when an amount is missing, non-numeric or not positive
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAmountOverflow is returned when an amount or resulting balance does not fit in the ledger
	ErrAmountOverflow = errors.New("amount is too large and would cause overflow")

	// ErrAccountNotFound is returned when the caller has no account
	ErrAccountNotFound = errors.New("account not found")

	// ErrTargetAccountNotFound is returned when a transfer destination does not exist
	ErrTargetAccountNotFound = errors.New("target account not found")

	// ErrInsufficientFunds is returned when a debit exceeds the available balance
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrSelfTransfer is returned when a transfer targets the caller's own account
	ErrSelfTransfer = errors.New("cannot transfer to the same account")

	// ErrInvalidPagination is returned when page or page size are out of range
	ErrInvalidPagination = errors.New("invalid pagination")

	// ErrUnauthenticated is returned when the request carries no usable caller identity
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrConcurrentModification is returned when the store aborted the unit of work
	// because of a conflicting concurrent transaction
	ErrConcurrentModification = errors.New("concurrent modification, retry the request")

	// ErrIdempotencyMismatch is returned when an idempotency key is reused with a different request
	ErrIdempotencyMismatch = errors.New("idempotency key reused with a different request")

	// ErrIdempotencyInProgress is returned when another request with the same key is being processed
	ErrIdempotencyInProgress = errors.New("request with this idempotency key is already in progress")

	// ErrDuplicateKey is returned when a unique constraint is violated
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrStore is returned for any storage failure
	ErrStore = errors.New("store error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrAmountOverflow):
		return CodeValidation
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrSelfTransfer):
		return CodeSelfTransfer
	case errors.Is(err, ErrInvalidPagination):
		return CodeInvalidPagination
	case errors.Is(err, ErrUnauthenticated):
		return CodeUnauthenticated
	case errors.Is(err, ErrTargetAccountNotFound):
		return CodeTargetAccountNotFound
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrConcurrentModification):
		return CodeConcurrentModification
	case errors.Is(err, ErrIdempotencyInProgress):
		return CodeIdempotencyInProgress
	case errors.Is(err, ErrIdempotencyMismatch):
		return CodeIdempotencyMismatch
	case errors.Is(err, ErrStore):
		return CodeStore
	default:
		return CodeInternalServer
	}
}

// Kind returns a stable machine-readable name for the error category
func Kind(err error) string {
	switch ErrorCode(err) {
	case CodeValidation:
		return "VALIDATION_ERROR"
	case CodeInsufficientFunds:
		return "INSUFFICIENT_FUNDS"
	case CodeSelfTransfer:
		return "SELF_TRANSFER_REJECTED"
	case CodeInvalidPagination:
		return "INVALID_PAGINATION"
	case CodeUnauthenticated:
		return "UNAUTHENTICATED"
	case CodeAccountNotFound:
		return "ACCOUNT_NOT_FOUND"
	case CodeTargetAccountNotFound:
		return "TARGET_ACCOUNT_NOT_FOUND"
	case CodeConcurrentModification:
		return "CONCURRENT_MODIFICATION"
	case CodeIdempotencyInProgress:
		return "IDEMPOTENCY_IN_PROGRESS"
	case CodeIdempotencyMismatch:
		return "IDEMPOTENCY_MISMATCH"
	case CodeStore:
		return "STORE_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// ValidationError names the rule a transaction request broke
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Is reports ErrValidation, plus ErrInvalidAmount or ErrAmountOverflow for amount rules
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return true
	case ErrInvalidAmount:
		return e.Field == "amount" && e.Rule != RuleAmountOverflow
	case ErrAmountOverflow:
		return e.Rule == RuleAmountOverflow
	}
	return false
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"field":      e.Field,
		"rule":       e.Rule,
		"error":      e.Message,
		"error_code": CodeValidation,
	}
}

// Validation rule names
const (
	RuleAmountRequired  = "amount_required"
	RuleAmountPositive  = "amount_positive"
	RuleAmountOverflow  = "amount_overflow"
	RuleDescription     = "description_required"
	RuleTransactionType = "transaction_type"
	RuleAccountNumber   = "account_number_required"
	RuleIdempotencyKey  = "idempotency_key"
	RuleRequestBody     = "request_body"
)

// NewValidationError creates a validation error for the given field and rule
func NewValidationError(field, rule, message string) error {
	return &ValidationError{Field: field, Rule: rule, Message: message}
}

// InsufficientFundsError provides detailed error information for a rejected debit
type InsufficientFundsError struct {
	AccountNumber   string
	CurrentBalance  string
	RequestedAmount string
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds on account %s: requested %s, available %s",
		e.AccountNumber, e.RequestedAmount, e.CurrentBalance)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type":       "insufficient_funds",
		"account_number":   e.AccountNumber,
		"requested_amount": e.RequestedAmount,
		"current_balance":  e.CurrentBalance,
		"error_code":       CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(accountNumber, requestedAmount, currentBalance string) error {
	return &InsufficientFundsError{
		AccountNumber:   accountNumber,
		CurrentBalance:  currentBalance,
		RequestedAmount: requestedAmount,
	}
}

// StoreError wraps a failure reported by the persistence layer
type StoreError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrStore
func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

// LogFields returns a map of fields for structured logging
func (e *StoreError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "store_error",
		"operation":  e.Op,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e),
	}
}

// NewStoreError wraps err as a store failure of operation op
func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// LogFields extracts structured logging fields from err when it carries them
func LogFields(err error) map[string]any {
	var withFields interface{ LogFields() map[string]any }
	if errors.As(err, &withFields) {
		return withFields.LogFields()
	}
	return map[string]any{
		"error":      err.Error(),
		"error_code": ErrorCode(err),
	}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrTargetAccountNotFound)
}

// IsClientError reports whether err was caused by the caller rather than the system
func IsClientError(err error) bool {
	code := ErrorCode(err)
	return code >= 4000 && code < 5000
}
