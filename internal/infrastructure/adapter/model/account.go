package model

import (
	"time"

	"github.com/google/uuid"
)

// Account represents the database model for accounts. Balance is stored in cents.
type Account struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountNumber string    `gorm:"not null;size:20;uniqueIndex"`
	AccountType   string    `gorm:"not null;size:20;check:chk_accounts_account_type,account_type IN ('CHECKING','SAVINGS')"`
	Balance       int64     `gorm:"not null;default:0;check:chk_accounts_balance_non_negative,balance >= 0"`
	AccountHolder string    `gorm:"not null;size:255"`
	CreatedAt     time.Time `gorm:"not null"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}
