package model

import (
	"time"

	"github.com/google/uuid"
)

// Transaction represents one append-only history row. Amount is stored in cents.
type Transaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq         int64     `gorm:"autoIncrement;not null;uniqueIndex"`
	Kind        string    `gorm:"column:type;not null;size:20;check:chk_transactions_type,type IN ('DEPOSIT','WITHDRAWAL','TRANSFER')"`
	Amount      int64     `gorm:"not null;check:chk_transactions_amount_positive,amount > 0"`
	Description string    `gorm:"not null;type:text"`
	Reference   *string   `gorm:"size:64"`
	CreatedAt   time.Time `gorm:"not null"`
	AccountID   uuid.UUID `gorm:"type:uuid;not null"`

	Account Account `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
