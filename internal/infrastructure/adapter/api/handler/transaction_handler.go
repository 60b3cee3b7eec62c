package handler

import (
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/banking-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader optionally makes a transaction request safe to resend
const IdempotencyKeyHeader = "Idempotency-Key"

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactions    usecase.TransactionUseCase
	defaultPageSize int
	logger          coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance.
// defaultPageSize applies when the limit query parameter is absent.
func NewTransactionHandler(
	transactions usecase.TransactionUseCase,
	defaultPageSize int,
	logger coreport.Logger,
) *TransactionHandler {
	if defaultPageSize < 1 || defaultPageSize > entity.MaxPageSize {
		defaultPageSize = entity.DefaultPageSize
	}

	return &TransactionHandler{
		transactions:    transactions,
		defaultPageSize: defaultPageSize,
		logger:          logger,
	}
}

// CreateTransaction handles the POST /api/transactions endpoint
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		writeError(c, h.logger, "Transaction request without caller", errs.ErrUnauthenticated)
		return
	}

	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, "Invalid transaction request format",
			errs.NewValidationError("body", errs.RuleRequestBody, "Invalid request body"))
		return
	}

	result, err := h.transactions.Submit(c.Request.Context(), userID, req.ToEntity(c.GetHeader(IdempotencyKeyHeader)))
	if err != nil {
		writeError(c, h.logger, "Transaction failed", err)
		return
	}

	if result.Replayed {
		c.Header("Idempotent-Replayed", "true")
	}
	c.JSON(http.StatusCreated, dto.NewTransactionResponse(result))
}

// ListTransactions handles the GET /api/transactions endpoint
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		writeError(c, h.logger, "History request without caller", errs.ErrUnauthenticated)
		return
	}

	page := queryInt(c, "page", entity.DefaultPage)
	limit := queryInt(c, "limit", h.defaultPageSize)

	result, err := h.transactions.History(c.Request.Context(), userID, page, limit)
	if err != nil {
		writeError(c, h.logger, "Failed to load transactions", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionListResponse(result))
}

// queryInt reads an integer query parameter. Absent, zero or non-numeric values use the fallback;
// other values are returned as-is and range-checked by the use case.
func queryInt(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value == 0 {
		return fallback
	}
	return value
}
