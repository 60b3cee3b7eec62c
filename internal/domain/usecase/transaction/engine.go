package transaction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/banking-ledger/internal/domain/port/persistence"
	"github.com/google/uuid"
)

// Result messages
const (
	MessageDeposit    = "Deposit successful"
	MessageWithdrawal = "Withdrawal successful"
	MessageTransfer   = "Transfer successful"
)

// Engine applies validated requests to the ledger. Every request runs in one unit
// of work: balance updates and history rows are committed together or not at all.
type Engine struct {
	uow          persistence.UnitOfWork
	accounts     persistence.AccountRepository
	transactions persistence.TransactionRepository
	idempotency  *IdempotencyHandler
	timeProvider coreport.TimeProvider
	metrics      coreport.MetricsRecorder
	logger       coreport.Logger
}

// NewEngine creates a new Engine
func NewEngine(
	uow persistence.UnitOfWork,
	accounts persistence.AccountRepository,
	transactions persistence.TransactionRepository,
	idempotency *IdempotencyHandler,
	timeProvider coreport.TimeProvider,
	metrics coreport.MetricsRecorder,
	logger coreport.Logger,
) *Engine {
	return &Engine{
		uow:          uow,
		accounts:     accounts,
		transactions: transactions,
		idempotency:  idempotency,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
	}
}

// Process applies req to the caller's account
func (e *Engine) Process(ctx context.Context, userID uuid.UUID, req NormalizedRequest) (*entity.TransactionResult, error) {
	if req.Movement == nil {
		return nil, errs.NewValidationError("type", errs.RuleTransactionType, "Invalid transaction type")
	}

	start := e.timeProvider.Now()
	log := e.logger.With(map[string]any{
		"user_id": userID.String(),
		"kind":    string(req.Kind()),
	})

	var result *entity.TransactionResult
	err := e.inUnitOfWork(ctx, log, func(txCtx context.Context) error {
		if req.IdempotencyKey != "" && e.idempotency != nil {
			replayed, found, err := e.idempotency.Lookup(txCtx, userID, req)
			if err != nil {
				return err
			}
			if found {
				result = replayed
				return nil
			}
		}

		source, err := e.accounts.GetByOwner(txCtx, userID)
		if err != nil {
			return err
		}

		switch m := req.Movement.(type) {
		case Deposit:
			result, err = e.deposit(txCtx, source, req)
		case Withdrawal:
			result, err = e.withdraw(txCtx, source, req, m)
		case Transfer:
			result, err = e.transfer(txCtx, source, req, m)
		default:
			err = fmt.Errorf("%w: unsupported movement %T", errs.ErrValidation, m)
		}
		if err != nil {
			return err
		}

		if req.IdempotencyKey != "" && e.idempotency != nil {
			return e.idempotency.Remember(txCtx, userID, req, result)
		}
		return nil
	})

	e.metrics.ObserveTransaction(string(req.Kind()), outcomeOf(result, err), e.timeProvider.Since(start))

	if err != nil {
		if errs.IsClientError(err) {
			log.Info("Transaction rejected", errs.LogFields(err))
		} else {
			log.Error("Transaction failed", errs.LogFields(err))
		}
		return nil, err
	}

	log.Info("Transaction committed", map[string]any{
		"transaction_id": result.TransactionID.String(),
		"amount":         req.Amount.String(),
		"new_balance":    result.NewBalance.String(),
		"replayed":       result.Replayed,
	})
	return result, nil
}

// inUnitOfWork runs fn in a fresh unit of work and commits when it succeeds.
// Any error or panic in fn rolls the unit of work back.
func (e *Engine) inUnitOfWork(ctx context.Context, log coreport.Logger, fn func(ctx context.Context) error) error {
	txCtx, err := e.uow.Begin(ctx)
	if err != nil {
		return err
	}

	finished := false
	defer func() {
		if finished {
			return
		}
		if rbErr := e.uow.Rollback(txCtx); rbErr != nil {
			log.Error("Failed to roll back unit of work", map[string]any{
				"error": rbErr.Error(),
			})
		}
	}()

	if err := fn(txCtx); err != nil {
		return err
	}

	finished = true
	return e.uow.Commit(txCtx)
}

func (e *Engine) deposit(ctx context.Context, source *entity.Account, req NormalizedRequest) (*entity.TransactionResult, error) {
	account, err := e.accounts.LockByID(ctx, source.ID)
	if err != nil {
		return nil, err
	}

	newBalance, err := account.Balance.Add(req.Amount)
	if err != nil {
		return nil, err
	}
	if err := e.accounts.ApplyDelta(ctx, account.ID, req.Amount); err != nil {
		return nil, err
	}

	txn, err := e.record(ctx, account.ID, entity.KindDeposit, req.Amount, req.Description, "", e.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	return &entity.TransactionResult{
		Message:       MessageDeposit,
		Kind:          entity.KindDeposit,
		TransactionID: txn.ID,
		NewBalance:    newBalance,
	}, nil
}

func (e *Engine) withdraw(
	ctx context.Context,
	source *entity.Account,
	req NormalizedRequest,
	withdrawal Withdrawal,
) (*entity.TransactionResult, error) {
	account, err := e.accounts.LockByID(ctx, source.ID)
	if err != nil {
		return nil, err
	}

	if !account.CanDebit(req.Amount) {
		return nil, insufficientFunds(account, req.Amount)
	}
	if err := e.accounts.ApplyDelta(ctx, account.ID, -req.Amount); err != nil {
		return nil, err
	}

	description := "Withdrawal: " + req.Description
	txn, err := e.record(ctx, account.ID, entity.KindWithdrawal, req.Amount, description, withdrawal.Reference, e.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	return &entity.TransactionResult{
		Message:       MessageWithdrawal,
		Kind:          entity.KindWithdrawal,
		TransactionID: txn.ID,
		NewBalance:    account.Balance - req.Amount,
	}, nil
}

func (e *Engine) transfer(
	ctx context.Context,
	source *entity.Account,
	req NormalizedRequest,
	transfer Transfer,
) (*entity.TransactionResult, error) {
	if transfer.TargetAccountNumber == source.AccountNumber {
		return nil, errs.ErrSelfTransfer
	}
	if !source.CanDebit(req.Amount) {
		return nil, insufficientFunds(source, req.Amount)
	}

	target, err := e.accounts.GetByNumber(ctx, transfer.TargetAccountNumber)
	if err != nil {
		return nil, targetNotFound(err, transfer.TargetAccountNumber)
	}
	if target.ID == source.ID {
		return nil, errs.ErrSelfTransfer
	}

	lockedSource, lockedTarget, err := e.lockPair(ctx, source.ID, target.ID, transfer.TargetAccountNumber)
	if err != nil {
		return nil, err
	}

	// Balances may have moved since the unlocked read above.
	if !lockedSource.CanDebit(req.Amount) {
		return nil, insufficientFunds(lockedSource, req.Amount)
	}
	targetBalance, err := lockedTarget.Balance.Add(req.Amount)
	if err != nil {
		return nil, err
	}

	if err := e.accounts.ApplyDelta(ctx, lockedSource.ID, -req.Amount); err != nil {
		return nil, err
	}
	if err := e.accounts.ApplyDelta(ctx, lockedTarget.ID, req.Amount); err != nil {
		return nil, targetNotFound(err, transfer.TargetAccountNumber)
	}

	now := e.timeProvider.Now()
	outgoing, err := e.record(ctx, lockedSource.ID, entity.KindTransfer, req.Amount,
		fmt.Sprintf("Transfer to %s (%s): %s", lockedTarget.AccountHolder, lockedTarget.AccountNumber, req.Description),
		lockedTarget.AccountNumber, now)
	if err != nil {
		return nil, err
	}
	incoming, err := e.record(ctx, lockedTarget.ID, entity.KindDeposit, req.Amount,
		fmt.Sprintf("Transfer from %s (%s): %s", lockedSource.AccountHolder, lockedSource.AccountNumber, req.Description),
		lockedSource.AccountNumber, now)
	if err != nil {
		return nil, err
	}

	return &entity.TransactionResult{
		Message:             MessageTransfer,
		Kind:                entity.KindTransfer,
		TransactionID:       outgoing.ID,
		NewBalance:          lockedSource.Balance - req.Amount,
		TargetAccount:       lockedTarget.AccountHolder,
		TargetTransactionID: incoming.ID,
		TargetNewBalance:    targetBalance,
	}, nil
}

// lockPair locks both accounts in ascending id order so that concurrent
// transfers between the same pair cannot deadlock
func (e *Engine) lockPair(
	ctx context.Context,
	sourceID, targetID uuid.UUID,
	targetNumber string,
) (*entity.Account, *entity.Account, error) {
	first, second := sourceID, targetID
	if bytes.Compare(first[:], second[:]) > 0 {
		first, second = second, first
	}

	locked := make(map[uuid.UUID]*entity.Account, 2)
	for _, id := range []uuid.UUID{first, second} {
		account, err := e.accounts.LockByID(ctx, id)
		if err != nil {
			if id == targetID {
				return nil, nil, targetNotFound(err, targetNumber)
			}
			return nil, nil, err
		}
		locked[id] = account
	}

	return locked[sourceID], locked[targetID], nil
}

func (e *Engine) record(
	ctx context.Context,
	accountID uuid.UUID,
	kind entity.TransactionKind,
	amount entity.Cents,
	description string,
	reference string,
	createdAt time.Time,
) (*entity.Transaction, error) {
	txn, err := entity.NewTransaction(accountID, kind, amount, description, reference, createdAt)
	if err != nil {
		return nil, err
	}
	if err := e.transactions.Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func insufficientFunds(account *entity.Account, amount entity.Cents) error {
	return errs.NewInsufficientFundsError(account.AccountNumber, amount.String(), account.Balance.String())
}

// targetNotFound reports a missing target account as ErrTargetAccountNotFound
func targetNotFound(err error, accountNumber string) error {
	if errors.Is(err, errs.ErrAccountNotFound) {
		return fmt.Errorf("%w: %s", errs.ErrTargetAccountNotFound, accountNumber)
	}
	return err
}

func outcomeOf(result *entity.TransactionResult, err error) string {
	switch {
	case err == nil && result != nil && result.Replayed:
		return coreport.OutcomeReplayed
	case err == nil:
		return coreport.OutcomeSuccess
	case errors.Is(err, errs.ErrConcurrentModification), errors.Is(err, errs.ErrIdempotencyInProgress):
		return coreport.OutcomeConflict
	case errs.IsClientError(err):
		return coreport.OutcomeRejected
	default:
		return coreport.OutcomeFailed
	}
}
