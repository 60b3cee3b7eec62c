package middleware

import (
	"net/http"

	errs "github.com/amirhossein-jamali/banking-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/banking-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDHeader carries the authenticated caller, set by the gateway in front of the service
const UserIDHeader = "X-User-ID"

const userIDKey = "user_id"

// Identity rejects requests without a valid caller id and stores the id in the gin context
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.GetHeader(UserIDHeader))
		if err != nil || userID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    errs.CodeUnauthenticated,
				Kind:    errs.Kind(errs.ErrUnauthenticated),
				Message: "Missing or invalid " + UserIDHeader + " header",
			})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the caller stored by Identity
func UserID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}
