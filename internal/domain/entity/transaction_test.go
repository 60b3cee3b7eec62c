package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionKind(t *testing.T) {
	testCases := []struct {
		input    string
		expected TransactionKind
	}{
		{"DEPOSIT", KindDeposit},
		{"withdrawal", KindWithdrawal},
		{" Transfer ", KindTransfer},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			kind, err := ParseTransactionKind(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, kind)
		})
	}

	t.Run("Unknown kind", func(t *testing.T) {
		_, err := ParseTransactionKind("REFUND")
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestNewTransaction(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	accountID := uuid.New()

	t.Run("Valid transaction creation", func(t *testing.T) {
		tx, err := NewTransaction(accountID, KindWithdrawal, 2500, "Withdrawal: rent", "4321", createdAt)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, tx.ID)
		assert.Equal(t, KindWithdrawal, tx.Kind)
		assert.Equal(t, Cents(2500), tx.Amount)
		assert.Equal(t, "Withdrawal: rent", tx.Description)
		assert.Equal(t, "4321", tx.Reference)
		assert.Equal(t, createdAt, tx.CreatedAt)
		assert.Equal(t, accountID, tx.AccountID)
	})

	t.Run("Rejects non-positive amount", func(t *testing.T) {
		_, err := NewTransaction(accountID, KindDeposit, 0, "salary", "", createdAt)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Rejects empty description", func(t *testing.T) {
		_, err := NewTransaction(accountID, KindDeposit, 100, " ", "", createdAt)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Rejects missing account", func(t *testing.T) {
		_, err := NewTransaction(uuid.Nil, KindDeposit, 100, "salary", "", createdAt)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestSignedAmount(t *testing.T) {
	assert.Equal(t, Cents(100), (&Transaction{Kind: KindDeposit, Amount: 100}).SignedAmount())
	assert.Equal(t, Cents(-100), (&Transaction{Kind: KindWithdrawal, Amount: 100}).SignedAmount())
	assert.Equal(t, Cents(-100), (&Transaction{Kind: KindTransfer, Amount: 100}).SignedAmount())
}

func TestNewPagination(t *testing.T) {
	testCases := []struct {
		name                string
		page, size          int
		total               int64
		totalPages          int
		hasNext, hasPrevious bool
	}{
		{"empty history", 1, 10, 0, 0, false, false},
		{"first of three", 1, 10, 25, 3, true, false},
		{"last partial page", 3, 10, 25, 3, false, true},
		{"exact multiple", 2, 5, 10, 2, false, true},
		{"beyond the end", 7, 10, 25, 3, false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.size, tc.total)

			assert.Equal(t, tc.totalPages, p.TotalPages)
			assert.Equal(t, tc.hasNext, p.HasNextPage)
			assert.Equal(t, tc.hasPrevious, p.HasPreviousPage)
			assert.Equal(t, tc.total, p.TotalItems)
		})
	}

	assert.Equal(t, 20, NewPagination(3, 10, 25).Offset())
}
