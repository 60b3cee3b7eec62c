package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/banking-ledger/mocks/port/core"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	fixedTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()
	owner := uuid.New()

	t.Run("Valid account creation", func(t *testing.T) {
		account, err := NewAccount(owner, "1234", AccountTypeSavings, " Jane Doe ", mockTime)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, account.ID)
		assert.Equal(t, "1234", account.AccountNumber)
		assert.Equal(t, AccountTypeSavings, account.AccountType)
		assert.Equal(t, "Jane Doe", account.AccountHolder)
		assert.Equal(t, Cents(0), account.Balance)
		assert.Equal(t, fixedTime, account.CreatedAt)
		assert.Equal(t, owner, account.UserID)
	})

	t.Run("Generates account number when empty", func(t *testing.T) {
		account, err := NewAccount(owner, "", AccountTypeChecking, "Jane Doe", mockTime)

		require.NoError(t, err)
		assert.Len(t, account.AccountNumber, AccountNumberLength)
		assert.NotEqual(t, byte('0'), account.AccountNumber[0])
	})

	t.Run("Missing owner", func(t *testing.T) {
		account, err := NewAccount(uuid.Nil, "1234", AccountTypeChecking, "Jane Doe", mockTime)

		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Nil(t, account)
	})

	t.Run("Missing holder", func(t *testing.T) {
		_, err := NewAccount(owner, "1234", AccountTypeChecking, "  ", mockTime)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestAccountCanDebit(t *testing.T) {
	account := &Account{Balance: 5000}

	assert.True(t, account.CanDebit(5000))
	assert.True(t, account.CanDebit(1))
	assert.False(t, account.CanDebit(5001))
}

func TestParseAccountType(t *testing.T) {
	accountType, err := ParseAccountType("")
	require.NoError(t, err)
	assert.Equal(t, AccountTypeChecking, accountType)

	accountType, err = ParseAccountType("savings")
	require.NoError(t, err)
	assert.Equal(t, AccountTypeSavings, accountType)

	_, err = ParseAccountType("brokerage")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	t.Run("Normalizes email and assigns id", func(t *testing.T) {
		user, err := NewUser(uuid.Nil, "Jane Doe", " Jane@Example.COM ", mockTime)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, fixedTime, user.CreatedAt)
	})

	t.Run("Keeps supplied id", func(t *testing.T) {
		id := uuid.New()
		user, err := NewUser(id, "Jane Doe", "jane@example.com", mockTime)

		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
	})

	t.Run("Invalid input", func(t *testing.T) {
		_, err := NewUser(uuid.Nil, "", "jane@example.com", mockTime)
		assert.ErrorIs(t, err, errs.ErrValidation)

		_, err = NewUser(uuid.Nil, "Jane", "not-an-email", mockTime)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}
