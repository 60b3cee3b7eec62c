package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/banking-ledger/mocks/port/core"
	persistencemocks "github.com/amirhossein-jamali/banking-ledger/mocks/port/persistence"
)

type txMarker struct{}

type fixture struct {
	uow      *persistencemocks.MockUnitOfWork
	users    *persistencemocks.MockUserRepository
	accounts *persistencemocks.MockAccountRepository
	logger   *coremocks.MockLogger
	useCase  *AccountUseCase
}

func newFixture(t *testing.T) *fixture {
	fixedTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	f := &fixture{
		uow:      persistencemocks.NewMockUnitOfWork(t),
		users:    persistencemocks.NewMockUserRepository(t),
		accounts: persistencemocks.NewMockAccountRepository(t),
		logger:   coremocks.NewMockLogger(t),
	}
	f.useCase = NewAccountUseCase(f.uow, f.users, f.accounts, mockTime, f.logger)
	return f
}

func TestGetAccount(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Returns account details", func(t *testing.T) {
		f := newFixture(t)
		details := &entity.AccountDetails{
			Account:    entity.Account{AccountNumber: "1001", Balance: 2500, UserID: userID},
			OwnerName:  "Jane Doe",
			OwnerEmail: "jane@example.com",
		}
		f.accounts.On("GetDetailsByOwner", ctx, userID).Return(details, nil).Once()

		result, err := f.useCase.GetAccount(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", result.OwnerName)
		assert.Equal(t, entity.Cents(2500), result.Balance)
	})

	t.Run("Missing account is not logged as an error", func(t *testing.T) {
		f := newFixture(t)
		f.accounts.On("GetDetailsByOwner", ctx, userID).Return(nil, errs.ErrAccountNotFound).Once()

		_, err := f.useCase.GetAccount(ctx, userID)

		require.ErrorIs(t, err, errs.ErrAccountNotFound)
		f.logger.AssertNotCalled(t, "Error", mock.Anything, mock.Anything)
	})

	t.Run("Store failure is logged", func(t *testing.T) {
		f := newFixture(t)
		storeErr := errs.NewStoreError("query", errors.New("timeout"))
		f.accounts.On("GetDetailsByOwner", ctx, userID).Return(nil, storeErr).Once()
		f.logger.On("Error", "Failed to load account", mock.Anything).Once()

		_, err := f.useCase.GetAccount(ctx, userID)

		require.ErrorIs(t, err, errs.ErrStore)
	})
}

func TestOpenAccount(t *testing.T) {
	ctx := context.Background()
	txCtx := context.WithValue(ctx, txMarker{}, "open")
	userID := uuid.New()

	request := entity.OpenAccountRequest{
		UserID:        userID,
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		AccountNumber: "1001",
		AccountType:   "SAVINGS",
	}

	t.Run("Creates owner and account together", func(t *testing.T) {
		f := newFixture(t)
		f.uow.On("Begin", ctx).Return(txCtx, nil).Once()
		f.users.On("Create", txCtx, mock.MatchedBy(func(user *entity.User) bool {
			return user.ID == userID && user.Email == "jane@example.com"
		})).Return(nil).Once()
		f.accounts.On("Create", txCtx, mock.MatchedBy(func(account *entity.Account) bool {
			return account.UserID == userID &&
				account.AccountNumber == "1001" &&
				account.AccountType == entity.AccountTypeSavings &&
				account.AccountHolder == "Jane Doe" &&
				account.Balance == 0
		})).Return(nil).Once()
		f.uow.On("Commit", txCtx).Return(nil).Once()
		f.logger.On("Info", "Account opened", mock.Anything).Once()

		account, err := f.useCase.OpenAccount(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, "1001", account.AccountNumber)
		f.uow.AssertNotCalled(t, "Rollback", mock.Anything)
	})

	t.Run("Duplicate account number rolls back the owner", func(t *testing.T) {
		f := newFixture(t)
		duplicate := errs.NewStoreError("execute", errs.ErrDuplicateKey)
		f.uow.On("Begin", ctx).Return(txCtx, nil).Once()
		f.users.On("Create", txCtx, mock.Anything).Return(nil).Once()
		f.accounts.On("Create", txCtx, mock.Anything).Return(duplicate).Once()
		f.uow.On("Rollback", txCtx).Return(nil).Once()

		_, err := f.useCase.OpenAccount(ctx, request)

		require.ErrorIs(t, err, errs.ErrDuplicateKey)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("Rollback failure is logged", func(t *testing.T) {
		f := newFixture(t)
		f.uow.On("Begin", ctx).Return(txCtx, nil).Once()
		f.users.On("Create", txCtx, mock.Anything).Return(errs.NewStoreError("execute", errs.ErrDuplicateKey)).Once()
		f.uow.On("Rollback", txCtx).Return(errors.New("connection reset")).Once()
		f.logger.On("Error", "Failed to roll back unit of work", mock.MatchedBy(func(fields map[string]any) bool {
			return fields["error"] == "connection reset" && fields["user_id"] == userID.String()
		})).Once()

		_, err := f.useCase.OpenAccount(ctx, request)

		require.ErrorIs(t, err, errs.ErrDuplicateKey)
	})

	t.Run("Invalid owner never opens a unit of work", func(t *testing.T) {
		f := newFixture(t)
		invalid := request
		invalid.Email = "not-an-email"

		_, err := f.useCase.OpenAccount(ctx, invalid)

		require.ErrorIs(t, err, errs.ErrValidation)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("Unknown account type", func(t *testing.T) {
		f := newFixture(t)
		invalid := request
		invalid.AccountType = "BROKERAGE"

		_, err := f.useCase.OpenAccount(ctx, invalid)

		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestUserExists(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	f := newFixture(t)
	f.users.On("GetByID", ctx, userID).Return(&entity.User{ID: userID}, nil).Once()
	exists, err := f.useCase.UserExists(ctx, userID)
	require.NoError(t, err)
	assert.True(t, exists)

	f.users.On("GetByID", ctx, userID).Return(nil, errs.ErrNotFound).Once()
	exists, err = f.useCase.UserExists(ctx, userID)
	require.NoError(t, err)
	assert.False(t, exists)
}
