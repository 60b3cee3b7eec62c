package transaction

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/banking-ledger/internal/domain/port/persistence"
	"github.com/google/uuid"
)

// ValidatePage checks a requested page against the allowed bounds
func ValidatePage(page, pageSize int) error {
	if page < 1 {
		return fmt.Errorf("%w: Page must be greater than 0", errs.ErrInvalidPagination)
	}
	if pageSize < 1 || pageSize > entity.MaxPageSize {
		return fmt.Errorf("%w: Limit must be between 1 and %d", errs.ErrInvalidPagination, entity.MaxPageSize)
	}
	return nil
}

// HistoryQuery reads an account's transactions page by page
type HistoryQuery struct {
	uow          persistence.UnitOfWork
	transactions persistence.TransactionRepository
	timeProvider coreport.TimeProvider
	metrics      coreport.MetricsRecorder
	logger       coreport.Logger
}

// NewHistoryQuery creates a new HistoryQuery
func NewHistoryQuery(
	uow persistence.UnitOfWork,
	transactions persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
	metrics coreport.MetricsRecorder,
	logger coreport.Logger,
) *HistoryQuery {
	return &HistoryQuery{
		uow:          uow,
		transactions: transactions,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
	}
}

// ListTransactions returns one page of the account's history, newest first.
// The count and the page are read from the same snapshot.
func (q *HistoryQuery) ListTransactions(
	ctx context.Context,
	accountID uuid.UUID,
	page, pageSize int,
) (*entity.TransactionPage, error) {
	if err := ValidatePage(page, pageSize); err != nil {
		return nil, err
	}

	start := q.timeProvider.Now()
	defer func() {
		q.metrics.ObserveHistoryQuery(q.timeProvider.Since(start))
	}()

	txCtx, err := q.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		// Read-only; committing or rolling back is equivalent.
		if rbErr := q.uow.Rollback(txCtx); rbErr != nil {
			q.logger.Warn("Failed to close history snapshot", map[string]any{
				"account_id": accountID.String(),
				"error":      rbErr.Error(),
			})
		}
	}()

	total, err := q.transactions.CountByAccount(txCtx, accountID)
	if err != nil {
		return nil, err
	}

	pagination := entity.NewPagination(page, pageSize, total)
	items := make([]*entity.Transaction, 0)
	if int64(pagination.Offset()) < total {
		rows, err := q.transactions.ListByAccount(txCtx, accountID, pageSize, pagination.Offset())
		if err != nil {
			return nil, err
		}
		items = append(items, rows...)
	}

	q.logger.Debug("Transaction history loaded", map[string]any{
		"account_id":  accountID.String(),
		"page":        page,
		"page_size":   pageSize,
		"total_items": total,
		"returned":    len(items),
	})

	return &entity.TransactionPage{
		Items:      items,
		Pagination: pagination,
	}, nil
}
