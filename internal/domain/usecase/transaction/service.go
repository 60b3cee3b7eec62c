package transaction

import (
	"context"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/banking-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/banking-ledger/internal/domain/port/usecase"
	"github.com/google/uuid"
)

// Service is the main transaction service implementation that ties together
// validation, the engine and history reads
type Service struct {
	validator *TransactionValidator
	engine    *Engine
	history   *HistoryQuery
	accounts  persistence.AccountRepository
	metrics   coreport.MetricsRecorder
	logger    coreport.Logger
}

var _ usecase.TransactionUseCase = (*Service)(nil)

// NewTransactionService creates a new transaction service
func NewTransactionService(
	uow persistence.UnitOfWork,
	accounts persistence.AccountRepository,
	transactions persistence.TransactionRepository,
	idempotency persistence.IdempotencyRepository,
	timeProvider coreport.TimeProvider,
	metrics coreport.MetricsRecorder,
	logger coreport.Logger,
) *Service {
	idempotencyHandler := NewIdempotencyHandler(idempotency, timeProvider)

	return &Service{
		validator: NewTransactionValidator(),
		engine:    NewEngine(uow, accounts, transactions, idempotencyHandler, timeProvider, metrics, logger),
		history:   NewHistoryQuery(uow, transactions, timeProvider, metrics, logger),
		accounts:  accounts,
		metrics:   metrics,
		logger:    logger,
	}
}

// Submit validates the request and applies it to the caller's account
func (s *Service) Submit(
	ctx context.Context,
	userID uuid.UUID,
	request entity.TransactionRequest,
) (*entity.TransactionResult, error) {
	normalized, err := s.validator.Validate(request)
	if err != nil {
		fields := errs.LogFields(err)
		fields["user_id"] = userID.String()
		s.logger.Info("Transaction request rejected", fields)
		s.metrics.ObserveTransaction(kindLabel(request.Type), coreport.OutcomeRejected, 0)
		return nil, err
	}

	return s.engine.Process(ctx, userID, normalized)
}

// History returns one page of the caller's transactions
func (s *Service) History(
	ctx context.Context,
	userID uuid.UUID,
	page, pageSize int,
) (*entity.TransactionPage, error) {
	if err := ValidatePage(page, pageSize); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.history.ListTransactions(ctx, account.ID, page, pageSize)
}

// kindLabel keeps metric labels bounded for requests that failed validation
func kindLabel(rawType string) string {
	kind, err := entity.ParseTransactionKind(rawType)
	if err != nil {
		return "INVALID"
	}
	return string(kind)
}
