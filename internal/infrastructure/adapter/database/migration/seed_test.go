package migration

import (
	"context"
	"errors"
	"testing"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/config"
	mockusecase "github.com/amirhossein-jamali/banking-ledger/mocks/port/usecase"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeOpener struct {
	existing map[uuid.UUID]bool
	opened   []entity.OpenAccountRequest
	openErr  error
}

func (f *fakeOpener) UserExists(_ context.Context, userID uuid.UUID) (bool, error) {
	return f.existing[userID], nil
}

func (f *fakeOpener) OpenAccount(_ context.Context, request entity.OpenAccountRequest) (*entity.Account, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	f.opened = append(f.opened, request)
	return &entity.Account{AccountNumber: request.AccountNumber, UserID: request.UserID}, nil
}

var (
	aliceID = uuid.MustParse("5d1b5b8e-7a43-4d0e-9a57-0f3c1c1a0001")
	bobID   = uuid.MustParse("5d1b5b8e-7a43-4d0e-9a57-0f3c1c1a0002")
)

func seedUsers() []config.SeedUser {
	return []config.SeedUser{
		{ID: aliceID.String(), Name: "Alice Doe", Email: "alice@example.com", AccountNumber: "1000000001", OpeningBalance: "1000.00"},
		{ID: bobID.String(), Name: "Bob Roe", Email: "bob@example.com", AccountNumber: "1000000002", AccountType: "SAVINGS"},
	}
}

func TestSeedUsers_OpensAndFundsNewUsers(t *testing.T) {
	opener := &fakeOpener{existing: map[uuid.UUID]bool{}}
	transactions := mockusecase.NewMockTransactionUseCase(t)

	transactions.On("Submit", mock.Anything, aliceID, mock.MatchedBy(func(r entity.TransactionRequest) bool {
		return r.Type == "DEPOSIT" &&
			r.Description == OpeningDepositDescription &&
			r.Amount.Valid && r.Amount.Decimal.StringFixed(2) == "1000.00"
	})).Return(&entity.TransactionResult{Kind: entity.KindDeposit, NewBalance: 100000}, nil).Once()

	seeder := NewSeeder(opener, transactions, logger.NewNoopLogger())
	require.NoError(t, seeder.SeedUsers(context.Background(), seedUsers()))

	require.Len(t, opener.opened, 2)
	assert.Equal(t, "alice@example.com", opener.opened[0].Email)
	assert.Equal(t, "SAVINGS", opener.opened[1].AccountType)
}

func TestSeedUsers_SkipsExistingUsers(t *testing.T) {
	opener := &fakeOpener{existing: map[uuid.UUID]bool{aliceID: true, bobID: true}}
	transactions := mockusecase.NewMockTransactionUseCase(t)
	transactions.On("History", mock.Anything, aliceID, 1, 1).
		Return(&entity.TransactionPage{Pagination: entity.Pagination{TotalItems: 1}}, nil).Once()

	seeder := NewSeeder(opener, transactions, logger.NewNoopLogger())
	require.NoError(t, seeder.SeedUsers(context.Background(), seedUsers()))

	assert.Empty(t, opener.opened)
	transactions.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestSeedUsers_InvalidID(t *testing.T) {
	seeder := NewSeeder(&fakeOpener{}, mockusecase.NewMockTransactionUseCase(t), logger.NewNoopLogger())

	err := seeder.SeedUsers(context.Background(), []config.SeedUser{{ID: "not-a-uuid", Email: "x@example.com"}})
	assert.ErrorContains(t, err, "invalid id")
}

func TestSeedUsers_OpenFailureStops(t *testing.T) {
	opener := &fakeOpener{existing: map[uuid.UUID]bool{}, openErr: errors.New("duplicate key")}
	seeder := NewSeeder(opener, mockusecase.NewMockTransactionUseCase(t), logger.NewNoopLogger())

	err := seeder.SeedUsers(context.Background(), seedUsers())
	assert.ErrorContains(t, err, "alice@example.com")
}

func TestSeedUsers_FundsExistingAccountWithoutHistory(t *testing.T) {
	opener := &fakeOpener{existing: map[uuid.UUID]bool{aliceID: true, bobID: true}}
	transactions := mockusecase.NewMockTransactionUseCase(t)
	transactions.On("History", mock.Anything, aliceID, 1, 1).
		Return(&entity.TransactionPage{Items: []*entity.Transaction{}}, nil).Once()
	transactions.On("Submit", mock.Anything, aliceID, mock.MatchedBy(func(r entity.TransactionRequest) bool {
		return r.Description == OpeningDepositDescription && r.Amount.Decimal.StringFixed(2) == "1000.00"
	})).Return(&entity.TransactionResult{Kind: entity.KindDeposit, NewBalance: 100000}, nil).Once()

	seeder := NewSeeder(opener, transactions, logger.NewNoopLogger())
	require.NoError(t, seeder.SeedUsers(context.Background(), seedUsers()))

	assert.Empty(t, opener.opened)
}

func TestSeedUsers_FailedDepositIsRetriedOnNextRun(t *testing.T) {
	opener := &fakeOpener{existing: map[uuid.UUID]bool{}}
	transactions := mockusecase.NewMockTransactionUseCase(t)
	users := seedUsers()[:1]

	transactions.On("Submit", mock.Anything, aliceID, mock.Anything).
		Return(nil, errs.ErrConcurrentModification).Once()

	seeder := NewSeeder(opener, transactions, logger.NewNoopLogger())
	err := seeder.SeedUsers(context.Background(), users)
	require.ErrorIs(t, err, errs.ErrConcurrentModification)
	require.Len(t, opener.opened, 1)

	opener.existing[aliceID] = true
	transactions.On("History", mock.Anything, aliceID, 1, 1).
		Return(&entity.TransactionPage{Items: []*entity.Transaction{}}, nil).Once()
	transactions.On("Submit", mock.Anything, aliceID, mock.Anything).
		Return(&entity.TransactionResult{Kind: entity.KindDeposit, NewBalance: 100000}, nil).Once()

	require.NoError(t, seeder.SeedUsers(context.Background(), users))
	assert.Len(t, opener.opened, 1)
}

func TestSeedUsers_InvalidOpeningBalance(t *testing.T) {
	opener := &fakeOpener{existing: map[uuid.UUID]bool{}}
	seeder := NewSeeder(opener, mockusecase.NewMockTransactionUseCase(t), logger.NewNoopLogger())

	err := seeder.SeedUsers(context.Background(), []config.SeedUser{
		{ID: aliceID.String(), Name: "Alice Doe", Email: "alice@example.com", AccountNumber: "1000000001", OpeningBalance: "-5"},
	})

	require.ErrorIs(t, err, errs.ErrInvalidAmount)
	assert.Empty(t, opener.opened)
}
