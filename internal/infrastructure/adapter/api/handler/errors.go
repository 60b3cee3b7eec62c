package handler

import (
	"errors"
	"net/http"

	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// StatusCode maps a domain error to its HTTP status
func StatusCode(err error) int {
	switch errs.ErrorCode(err) {
	case errs.CodeValidation, errs.CodeInsufficientFunds, errs.CodeSelfTransfer, errs.CodeInvalidPagination:
		return http.StatusBadRequest
	case errs.CodeUnauthenticated:
		return http.StatusUnauthorized
	case errs.CodeAccountNotFound, errs.CodeTargetAccountNotFound:
		return http.StatusNotFound
	case errs.CodeConcurrentModification, errs.CodeIdempotencyInProgress:
		return http.StatusConflict
	case errs.CodeIdempotencyMismatch:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorResponse builds the error body. Server-side details never leave the process.
func NewErrorResponse(err error) dto.ErrorResponse {
	response := dto.ErrorResponse{
		Code:    errs.ErrorCode(err),
		Kind:    errs.Kind(err),
		Message: err.Error(),
	}

	switch response.Code {
	case errs.CodeConcurrentModification:
		response.Message = errs.ErrConcurrentModification.Error()
	case errs.CodeStore, errs.CodeInternalServer:
		response.Message = "Internal server error"
	}

	var insufficient *errs.InsufficientFundsError
	if errors.As(err, &insufficient) {
		response.Message = "Insufficient funds"
		response.CurrentBalance = insufficient.CurrentBalance
		response.RequestedAmount = insufficient.RequestedAmount
	}

	return response
}

// writeError logs err and sends the mapped error response
func writeError(c *gin.Context, logger coreport.Logger, message string, err error) {
	status := StatusCode(err)

	fields := errs.LogFields(err)
	fields["path"] = c.Request.URL.Path
	fields["status"] = status
	fields["request_id"] = middleware.RequestID(c)
	if status >= http.StatusInternalServerError {
		logger.Error(message, fields)
	} else {
		logger.Debug(message, fields)
	}

	_ = c.Error(err)
	c.JSON(status, NewErrorResponse(err))
}
