package middleware

import (
	"net/http"
	"runtime/debug"

	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/banking-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers from panics in later handlers and answers 500.
// An open unit of work is rolled back by the engine's deferred rollback before the panic reaches here.
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			fields := map[string]any{
				"error":      recovered,
				"path":       c.Request.URL.Path,
				"method":     c.Request.Method,
				"client_ip":  c.ClientIP(),
				"request_id": RequestID(c),
				"stack":      string(debug.Stack()),
			}
			if userID, ok := UserID(c); ok {
				fields["user_id"] = userID.String()
			}
			logger.Error("Panic recovered in API request", fields)

			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Code:    errs.CodeInternalServer,
				Kind:    errs.Kind(errs.ErrInternalServer),
				Message: "Internal server error",
			})
		}()

		c.Next()
	}
}
