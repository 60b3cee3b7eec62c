package entity

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"github.com/google/uuid"
)

// AccountType distinguishes checking from savings accounts
type AccountType string

// Account types
const (
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeSavings  AccountType = "SAVINGS"
)

// AccountNumberLength is the number of digits in generated account numbers
const AccountNumberLength = 10

// ParseAccountType validates an account type, defaulting to checking when empty
func ParseAccountType(value string) (AccountType, error) {
	switch AccountType(strings.ToUpper(strings.TrimSpace(value))) {
	case "", AccountTypeChecking:
		return AccountTypeChecking, nil
	case AccountTypeSavings:
		return AccountTypeSavings, nil
	default:
		return "", fmt.Errorf("%w: unknown account type %q", errs.ErrValidation, value)
	}
}

// Account is a user's ledger account. The balance is only changed by the transaction engine.
type Account struct {
	ID            uuid.UUID
	AccountNumber string
	AccountType   AccountType
	Balance       Cents
	AccountHolder string
	CreatedAt     time.Time
	UserID        uuid.UUID
}

// NewAccount creates an empty account for the given owner
func NewAccount(
	userID uuid.UUID,
	accountNumber string,
	accountType AccountType,
	accountHolder string,
	timeProvider core.TimeProvider,
) (*Account, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: owner is required", errs.ErrValidation)
	}
	accountHolder = strings.TrimSpace(accountHolder)
	if accountHolder == "" {
		return nil, fmt.Errorf("%w: account holder is required", errs.ErrValidation)
	}

	accountNumber = strings.TrimSpace(accountNumber)
	if accountNumber == "" {
		generated, err := GenerateAccountNumber()
		if err != nil {
			return nil, err
		}
		accountNumber = generated
	}

	return &Account{
		ID:            uuid.New(),
		AccountNumber: accountNumber,
		AccountType:   accountType,
		AccountHolder: accountHolder,
		CreatedAt:     timeProvider.Now(),
		UserID:        userID,
	}, nil
}

// CanDebit reports whether amount can be taken without the balance going negative
func (a *Account) CanDebit(amount Cents) bool {
	return a.Balance >= amount
}

// GenerateAccountNumber returns a random numeric account number
func GenerateAccountNumber() (string, error) {
	var sb strings.Builder
	for i := 0; i < AccountNumberLength; i++ {
		digit, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate account number: %w", err)
		}
		if i == 0 && digit.Int64() == 0 {
			digit = big.NewInt(1)
		}
		sb.WriteString(digit.String())
	}
	return sb.String(), nil
}

// AccountDetails is an account together with its owner's profile
type AccountDetails struct {
	Account
	OwnerName  string
	OwnerEmail string
}

// OpenAccountRequest describes a new owner and account. An empty AccountNumber is generated.
type OpenAccountRequest struct {
	UserID        uuid.UUID
	Name          string
	Email         string
	AccountNumber string
	AccountType   string
}
