package transaction

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
)

func amount(value string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(value))
}

func TestValidateTransactionRequest(t *testing.T) {
	validator := NewTransactionValidator()

	tests := []struct {
		name     string
		request  entity.TransactionRequest
		expected NormalizedRequest
	}{
		{
			name:     "Deposit ignores account number",
			request:  entity.TransactionRequest{Amount: amount("100.50"), Description: " Salary ", Type: "DEPOSIT", AccountNumber: "1234"},
			expected: NormalizedRequest{Amount: 10050, Description: "Salary", Movement: Deposit{}},
		},
		{
			name:     "Withdrawal keeps reference",
			request:  entity.TransactionRequest{Amount: amount("25.5"), Description: "Rent", Type: "withdrawal", AccountNumber: " EXT-1 "},
			expected: NormalizedRequest{Amount: 2550, Description: "Rent", Movement: Withdrawal{Reference: "EXT-1"}},
		},
		{
			name:     "Transfer rounds half up",
			request:  entity.TransactionRequest{Amount: amount("10.005"), Description: "Dinner", Type: "TRANSFER", AccountNumber: "2002", IdempotencyKey: "k1"},
			expected: NormalizedRequest{Amount: 1001, Description: "Dinner", Movement: Transfer{TargetAccountNumber: "2002"}, IdempotencyKey: "k1"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			normalized, err := validator.Validate(tc.request)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, normalized)
		})
	}
}

func TestValidateTransactionRequestFailures(t *testing.T) {
	validator := NewTransactionValidator()

	tests := []struct {
		name         string
		request      entity.TransactionRequest
		rule         string
		errorMessage string
	}{
		{
			name:         "Missing amount",
			request:      entity.TransactionRequest{Description: "Salary", Type: "DEPOSIT"},
			rule:         errs.RuleAmountRequired,
			errorMessage: "Amount must be a positive number",
		},
		{
			name:         "Zero amount",
			request:      entity.TransactionRequest{Amount: amount("0"), Description: "Salary", Type: "DEPOSIT"},
			rule:         errs.RuleAmountPositive,
			errorMessage: "Amount must be a positive number",
		},
		{
			name:         "Negative amount",
			request:      entity.TransactionRequest{Amount: amount("-5"), Description: "Salary", Type: "DEPOSIT"},
			rule:         errs.RuleAmountPositive,
			errorMessage: "Amount must be a positive number",
		},
		{
			name:         "Amount rounding to zero",
			request:      entity.TransactionRequest{Amount: amount("0.004"), Description: "Salary", Type: "DEPOSIT"},
			rule:         errs.RuleAmountPositive,
			errorMessage: "Amount must be a positive number",
		},
		{
			name:         "Amount too large",
			request:      entity.TransactionRequest{Amount: amount("1e20"), Description: "Salary", Type: "DEPOSIT"},
			rule:         errs.RuleAmountOverflow,
			errorMessage: "Amount is too large",
		},
		{
			name:         "Blank description",
			request:      entity.TransactionRequest{Amount: amount("10"), Description: "   ", Type: "DEPOSIT"},
			rule:         errs.RuleDescription,
			errorMessage: "Description is required",
		},
		{
			name:         "Unknown type",
			request:      entity.TransactionRequest{Amount: amount("10"), Description: "Salary", Type: "REFUND"},
			rule:         errs.RuleTransactionType,
			errorMessage: "Invalid transaction type",
		},
		{
			name:         "Withdrawal without account number",
			request:      entity.TransactionRequest{Amount: amount("10"), Description: "Rent", Type: "WITHDRAWAL"},
			rule:         errs.RuleAccountNumber,
			errorMessage: "Account number is required for WITHDRAWAL transactions",
		},
		{
			name:         "Transfer without account number",
			request:      entity.TransactionRequest{Amount: amount("10"), Description: "Dinner", Type: "TRANSFER", AccountNumber: " "},
			rule:         errs.RuleAccountNumber,
			errorMessage: "Account number is required for TRANSFER transactions",
		},
		{
			name:         "Oversized idempotency key",
			request:      entity.TransactionRequest{Amount: amount("10"), Description: "Salary", Type: "DEPOSIT", IdempotencyKey: strings.Repeat("k", 256)},
			rule:         errs.RuleIdempotencyKey,
			errorMessage: "Idempotency key must be at most 255 characters",
		},
		{
			name:         "Amount is checked before description and type",
			request:      entity.TransactionRequest{Amount: amount("-1"), Description: "", Type: "BOGUS"},
			rule:         errs.RuleAmountPositive,
			errorMessage: "Amount must be a positive number",
		},
		{
			name:         "Description is checked before type",
			request:      entity.TransactionRequest{Amount: amount("1"), Description: "", Type: "BOGUS"},
			rule:         errs.RuleDescription,
			errorMessage: "Description is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validator.Validate(tc.request)

			require.ErrorIs(t, err, errs.ErrValidation)
			var validationErr *errs.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.rule, validationErr.Rule)
			assert.Equal(t, tc.errorMessage, err.Error())
		})
	}
}
