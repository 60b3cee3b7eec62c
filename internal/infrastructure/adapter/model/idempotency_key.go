package model

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey stores the result of a keyed request per caller
type IdempotencyKey struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key         string    `gorm:"primaryKey;size:255"`
	RequestHash string    `gorm:"not null;size:64"`
	Response    []byte    `gorm:"type:bytea;not null"`
	CreatedAt   time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}
