package handler

import (
	"net/http"

	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/banking-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accounts usecase.AccountUseCase
	logger   coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(accounts usecase.AccountUseCase, logger coreport.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// GetAccount handles the GET /api/account endpoint
func (h *AccountHandler) GetAccount(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		writeError(c, h.logger, "Account request without caller", errs.ErrUnauthenticated)
		return
	}

	details, err := h.accounts.GetAccount(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, "Error getting account", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAccountResponse(details))
}
