package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents the database model for account owners
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null;size:255"`
	Email        string    `gorm:"not null;size:255;uniqueIndex"`
	PasswordHash string    `gorm:"not null;size:255;default:''"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
