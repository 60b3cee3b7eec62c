package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyRecord binds a caller-supplied key to the request it first arrived with
// and the result that request produced
type IdempotencyRecord struct {
	UserID      uuid.UUID
	Key         string
	RequestHash string
	Response    []byte
	CreatedAt   time.Time
}
