//go:build integration

package repository

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	accountUseCase "github.com/amirhossein-jamali/banking-ledger/internal/domain/usecase/account"
	transactionUseCase "github.com/amirhossein-jamali/banking-ledger/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/metrics"
	timeAdapter "github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/time"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type ledgerFixture struct {
	store        *database.GormStore
	accounts     *AccountRepository
	transactions *TransactionRepository
	service      *transactionUseCase.Service
	opener       *accountUseCase.AccountUseCase
}

func setupLedger(t *testing.T) *ledgerFixture {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("ledger"),
		tcpostgres.WithUsername("ledger"),
		tcpostgres.WithPassword("ledger"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := &database.Config{
		Host:            host,
		Port:            port.Int(),
		Username:        "ledger",
		Password:        "ledger",
		Database:        "ledger",
		SSLMode:         "disable",
		MaxOpenConns:    20,
		MaxIdleConns:    10,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
		QueryTimeout:    5 * time.Second,
		RetryAttempts:   3,
		RetryDelay:      time.Second,
		LogLevel:        "silent",
		IsolationLevel:  sql.LevelSerializable,
		LockTimeout:     5 * time.Second,
	}

	log := logger.NewNoopLogger()
	clock := timeAdapter.NewRealTimeProvider()

	manager := database.NewManager(cfg, log, clock)
	db, err := manager.Connect(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Close() })

	require.NoError(t, migration.NewMigrationManager(db, log, clock).MigrateAll(ctx))

	store := manager.Store()
	accounts := NewAccountRepository(store, log)
	transactions := NewTransactionRepository(store, log)
	users := NewUserRepository(store, log)
	idempotency := NewIdempotencyRepository(store)

	return &ledgerFixture{
		store:        store,
		accounts:     accounts,
		transactions: transactions,
		service:      transactionUseCase.NewTransactionService(store, accounts, transactions, idempotency, clock, metrics.NewNoopRecorder(), log),
		opener:       accountUseCase.NewAccountUseCase(store, users, accounts, clock, log),
	}
}

func (f *ledgerFixture) openAccount(t *testing.T, name, email, number, opening string) uuid.UUID {
	t.Helper()
	userID := uuid.New()

	_, err := f.opener.OpenAccount(context.Background(), entity.OpenAccountRequest{
		UserID:        userID,
		Name:          name,
		Email:         email,
		AccountNumber: number,
	})
	require.NoError(t, err)

	if opening != "" {
		_, err = f.service.Submit(context.Background(), userID, request("DEPOSIT", opening, "Opening deposit", ""))
		require.NoError(t, err)
	}
	return userID
}

func (f *ledgerFixture) balance(t *testing.T, userID uuid.UUID) entity.Cents {
	t.Helper()
	account, err := f.accounts.GetByOwner(context.Background(), userID)
	require.NoError(t, err)
	return account.Balance
}

// assertReconciled checks that the signed ledger rows of the owner's account add up to its
// balance. Every account here starts at zero, so the opening deposit is part of the ledger.
func (f *ledgerFixture) assertReconciled(t *testing.T, userID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	account, err := f.accounts.GetByOwner(ctx, userID)
	require.NoError(t, err)

	const pageSize = 50
	var sum entity.Cents
	for offset := 0; ; offset += pageSize {
		rows, err := f.transactions.ListByAccount(ctx, account.ID, pageSize, offset)
		require.NoError(t, err)
		for _, row := range rows {
			sum += row.SignedAmount()
		}
		if len(rows) < pageSize {
			break
		}
	}

	assert.Equal(t, account.Balance, sum, "ledger of %s does not match its balance", account.AccountNumber)
}

func assertConflictOrRejected(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		return
	}
	assert.True(t,
		errors.Is(err, errs.ErrInsufficientFunds) || errors.Is(err, errs.ErrConcurrentModification),
		"unexpected error: %v", err)
}

func request(kind, amount, description, accountNumber string) entity.TransactionRequest {
	return entity.TransactionRequest{
		Amount:        decimal.NewNullDecimal(decimal.RequireFromString(amount)),
		Description:   description,
		Type:          kind,
		AccountNumber: accountNumber,
	}
}

func TestLedgerIntegration(t *testing.T) {
	f := setupLedger(t)
	ctx := context.Background()

	t.Run("deposit then withdrawal", func(t *testing.T) {
		userID := f.openAccount(t, "Dana Lee", "dana@example.com", "3000000001", "")

		result, err := f.service.Submit(ctx, userID, request("DEPOSIT", "100.00", "Salary", ""))
		require.NoError(t, err)
		assert.Equal(t, entity.Cents(10000), result.NewBalance)

		result, err = f.service.Submit(ctx, userID, request("WITHDRAWAL", "30.50", "ATM", "3000000001"))
		require.NoError(t, err)
		assert.Equal(t, entity.Cents(6950), result.NewBalance)
		assert.Equal(t, entity.Cents(6950), f.balance(t, userID))

		page, err := f.service.History(ctx, userID, 1, 10)
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, entity.KindWithdrawal, page.Items[0].Kind)
		assert.Equal(t, "Withdrawal: ATM", page.Items[0].Description)
		assert.Equal(t, entity.KindDeposit, page.Items[1].Kind)
	})

	t.Run("transfer conserves money and writes both sides", func(t *testing.T) {
		alice := f.openAccount(t, "Alice Doe", "alice@example.com", "3000000002", "100.00")
		bob := f.openAccount(t, "Bob Roe", "bob@example.com", "3000000003", "")

		result, err := f.service.Submit(ctx, alice, request("TRANSFER", "40.00", "Rent", "3000000003"))
		require.NoError(t, err)
		assert.Equal(t, "3000000003", result.TargetAccount)

		assert.Equal(t, entity.Cents(6000), f.balance(t, alice))
		assert.Equal(t, entity.Cents(4000), f.balance(t, bob))

		bobPage, err := f.service.History(ctx, bob, 1, 10)
		require.NoError(t, err)
		require.Len(t, bobPage.Items, 1)
		assert.Equal(t, entity.KindDeposit, bobPage.Items[0].Kind)
		assert.Equal(t, "Transfer from Alice Doe (3000000002): Rent", bobPage.Items[0].Description)

		alicePage, err := f.service.History(ctx, alice, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, "Transfer to Bob Roe (3000000003): Rent", alicePage.Items[0].Description)
		assert.True(t, alicePage.Items[0].CreatedAt.Equal(bobPage.Items[0].CreatedAt))
		f.assertReconciled(t, alice)
		f.assertReconciled(t, bob)
	})

	t.Run("rejected transfers leave balances untouched", func(t *testing.T) {
		carol := f.openAccount(t, "Carol Poe", "carol@example.com", "3000000004", "10.00")

		_, err := f.service.Submit(ctx, carol, request("TRANSFER", "1.00", "Self", "3000000004"))
		assert.ErrorIs(t, err, errs.ErrSelfTransfer)

		_, err = f.service.Submit(ctx, carol, request("TRANSFER", "1.00", "Nobody", "9999999999"))
		assert.ErrorIs(t, err, errs.ErrTargetAccountNotFound)

		_, err = f.service.Submit(ctx, carol, request("WITHDRAWAL", "10.01", "Too much", "3000000004"))
		var insufficient *errs.InsufficientFundsError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, "10.00", insufficient.CurrentBalance)

		assert.Equal(t, entity.Cents(1000), f.balance(t, carol))
		page, err := f.service.History(ctx, carol, 1, 10)
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
	})

	t.Run("rolled back unit of work leaves no trace", func(t *testing.T) {
		erin := f.openAccount(t, "Erin Moe", "erin@example.com", "3000000005", "50.00")
		account, err := f.accounts.GetByOwner(ctx, erin)
		require.NoError(t, err)

		txCtx, err := f.store.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, f.accounts.ApplyDelta(txCtx, account.ID, -2000))
		require.NoError(t, f.transactions.Create(txCtx, &entity.Transaction{
			ID: uuid.New(), Kind: entity.KindWithdrawal, Amount: 2000, Description: "Withdrawal: lost",
			CreatedAt: time.Now().UTC(), AccountID: account.ID,
		}))
		require.NoError(t, f.store.Rollback(txCtx))

		assert.Equal(t, entity.Cents(5000), f.balance(t, erin))
		total, err := f.transactions.CountByAccount(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		f.assertReconciled(t, erin)
	})

	t.Run("balance check constraint backs the engine", func(t *testing.T) {
		frank := f.openAccount(t, "Frank Noe", "frank@example.com", "3000000006", "1.00")
		account, err := f.accounts.GetByOwner(ctx, frank)
		require.NoError(t, err)

		err = f.accounts.ApplyDelta(ctx, account.ID, -101)
		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
		assert.Equal(t, entity.Cents(100), f.balance(t, frank))
	})

	t.Run("transactions are append-only", func(t *testing.T) {
		_, err := f.store.Execute(ctx, `UPDATE transactions SET amount = 1`)
		assert.ErrorIs(t, err, errs.ErrConstraintViolation)

		_, err = f.store.Execute(ctx, `DELETE FROM transactions`)
		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
	})

	t.Run("pagination over 25 rows", func(t *testing.T) {
		gina := f.openAccount(t, "Gina Soe", "gina@example.com", "3000000007", "")
		for i := 0; i < 25; i++ {
			_, err := f.service.Submit(ctx, gina, request("DEPOSIT", "1.00", "Deposit", ""))
			require.NoError(t, err)
		}

		page, err := f.service.History(ctx, gina, 2, 10)
		require.NoError(t, err)
		assert.Len(t, page.Items, 10)
		assert.Equal(t, entity.Pagination{
			CurrentPage: 2, PageSize: 10, TotalItems: 25, TotalPages: 3,
			HasNextPage: true, HasPreviousPage: true,
		}, page.Pagination)
		for i := 1; i < len(page.Items); i++ {
			assert.False(t, page.Items[i].CreatedAt.After(page.Items[i-1].CreatedAt))
		}

		again, err := f.service.History(ctx, gina, 2, 10)
		require.NoError(t, err)
		for i := range page.Items {
			assert.Equal(t, page.Items[i].ID, again.Items[i].ID)
		}

		beyond, err := f.service.History(ctx, gina, 4, 10)
		require.NoError(t, err)
		assert.NotNil(t, beyond.Items)
		assert.Empty(t, beyond.Items)
		assert.Equal(t, int64(25), beyond.Pagination.TotalItems)
		assert.False(t, beyond.Pagination.HasNextPage)
	})

	t.Run("idempotency key replays the first result", func(t *testing.T) {
		hank := f.openAccount(t, "Hank Zoe", "hank@example.com", "3000000008", "")

		req := request("DEPOSIT", "5.00", "Refund", "")
		req.IdempotencyKey = "refund-1"

		first, err := f.service.Submit(ctx, hank, req)
		require.NoError(t, err)
		second, err := f.service.Submit(ctx, hank, req)
		require.NoError(t, err)

		assert.True(t, second.Replayed)
		assert.Equal(t, first.TransactionID, second.TransactionID)
		assert.Equal(t, entity.Cents(500), f.balance(t, hank))

		req.Amount = decimal.NewNullDecimal(decimal.RequireFromString("6.00"))
		_, err = f.service.Submit(ctx, hank, req)
		assert.ErrorIs(t, err, errs.ErrIdempotencyMismatch)
	})

	t.Run("concurrent withdrawals never overdraw", func(t *testing.T) {
		ivy := f.openAccount(t, "Ivy Roe", "ivy@example.com", "3000000009", "100.00")

		const workers = 10
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.service.Submit(ctx, ivy, request("WITHDRAWAL", "20.00", "Race", "3000000009"))
				if err == nil {
					mu.Lock()
					successes++
					mu.Unlock()
					return
				}
				assertConflictOrRejected(t, err)
			}()
		}
		wg.Wait()

		assert.LessOrEqual(t, successes, 5)
		assert.Equal(t, entity.Cents(10000-2000*successes), f.balance(t, ivy))
		f.assertReconciled(t, ivy)
	})

	t.Run("opposing concurrent transfers conserve the total", func(t *testing.T) {
		jack := f.openAccount(t, "Jack Doe", "jack@example.com", "3000000010", "100.00")
		kate := f.openAccount(t, "Kate Doe", "kate@example.com", "3000000011", "100.00")

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, err := f.service.Submit(ctx, jack, request("TRANSFER", "3.00", "Ping", "3000000011"))
				assertConflictOrRejected(t, err)
			}()
			go func() {
				defer wg.Done()
				_, err := f.service.Submit(ctx, kate, request("TRANSFER", "5.00", "Pong", "3000000010"))
				assertConflictOrRejected(t, err)
			}()
		}
		wg.Wait()

		total := f.balance(t, jack) + f.balance(t, kate)
		assert.Equal(t, entity.Cents(20000), total)
		f.assertReconciled(t, jack)
		f.assertReconciled(t, kate)
	})
}
