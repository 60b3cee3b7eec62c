package dto

import (
	"time"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
)

// AccountResponse represents the caller's account together with its owner
type AccountResponse struct {
	ID            string    `json:"id"`
	AccountNumber string    `json:"accountNumber"`
	AccountType   string    `json:"accountType"`
	Balance       string    `json:"balance"`
	AccountHolder string    `json:"accountHolder"`
	CreatedAt     time.Time `json:"createdAt"`
	OwnerName     string    `json:"ownerName"`
	OwnerEmail    string    `json:"ownerEmail"`
}

// NewAccountResponse builds the response body from account details
func NewAccountResponse(details *entity.AccountDetails) AccountResponse {
	return AccountResponse{
		ID:            details.ID.String(),
		AccountNumber: details.AccountNumber,
		AccountType:   string(details.AccountType),
		Balance:       details.Balance.String(),
		AccountHolder: details.AccountHolder,
		CreatedAt:     details.CreatedAt,
		OwnerName:     details.OwnerName,
		OwnerEmail:    details.OwnerEmail,
	}
}
