package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/amirhossein-jamali/banking-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// TransactionRequest represents the API request for a deposit, withdrawal or transfer.
// Amount is kept raw so that malformed values reach the domain validator as a missing amount.
type TransactionRequest struct {
	Amount        json.RawMessage `json:"amount"`
	Description   string          `json:"description"`
	Type          string          `json:"type"`
	AccountNumber string          `json:"accountNumber"`
}

// ToEntity converts the request into the domain request
func (r TransactionRequest) ToEntity(idempotencyKey string) entity.TransactionRequest {
	return entity.TransactionRequest{
		Amount:         parseAmount(r.Amount),
		Description:    r.Description,
		Type:           r.Type,
		AccountNumber:  r.AccountNumber,
		IdempotencyKey: idempotencyKey,
	}
}

// parseAmount accepts a JSON number or a quoted decimal string
func parseAmount(raw json.RawMessage) decimal.NullDecimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return decimal.NullDecimal{}
	}

	var amount decimal.NullDecimal
	if err := amount.UnmarshalJSON(raw); err != nil {
		return decimal.NullDecimal{}
	}
	return amount
}

// TransactionResponse represents the API response for a committed transaction
type TransactionResponse struct {
	Message       string `json:"message"`
	TransactionID string `json:"transactionId"`
	NewBalance    string `json:"newBalance"`
	TargetAccount string `json:"targetAccount,omitempty"`
}

// NewTransactionResponse builds the response body from a domain result
func NewTransactionResponse(result *entity.TransactionResult) TransactionResponse {
	response := TransactionResponse{
		Message:       result.Message,
		TransactionID: result.TransactionID.String(),
		NewBalance:    result.NewBalance.String(),
	}
	if result.IsTransfer() {
		response.TargetAccount = result.TargetAccount
	}
	return response
}

// TransactionItem is one row of the caller's history
type TransactionItem struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	Reference   string    `json:"reference,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	AccountID   string    `json:"accountId"`
}

// PaginationResponse describes where a page sits in the full history
type PaginationResponse struct {
	CurrentPage     int   `json:"currentPage"`
	PageSize        int   `json:"pageSize"`
	TotalItems      int64 `json:"totalItems"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// TransactionListResponse represents the API response for GET /api/transactions
type TransactionListResponse struct {
	Data       []TransactionItem  `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// NewTransactionListResponse builds the paginated envelope. Data is never null.
func NewTransactionListResponse(page *entity.TransactionPage) TransactionListResponse {
	items := make([]TransactionItem, 0, len(page.Items))
	for _, txn := range page.Items {
		items = append(items, TransactionItem{
			ID:          txn.ID.String(),
			Type:        string(txn.Kind),
			Amount:      txn.Amount.String(),
			Description: txn.Description,
			Reference:   txn.Reference,
			CreatedAt:   txn.CreatedAt,
			AccountID:   txn.AccountID.String(),
		})
	}

	p := page.Pagination
	return TransactionListResponse{
		Data: items,
		Pagination: PaginationResponse{
			CurrentPage:     p.CurrentPage,
			PageSize:        p.PageSize,
			TotalItems:      p.TotalItems,
			TotalPages:      p.TotalPages,
			HasNextPage:     p.HasNextPage,
			HasPreviousPage: p.HasPreviousPage,
		},
	}
}
