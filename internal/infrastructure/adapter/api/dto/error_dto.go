package dto

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`

	// Set for insufficient funds only
	CurrentBalance  string `json:"currentBalance,omitempty"`
	RequestedAmount string `json:"requestedAmount,omitempty"`
}

// HealthResponse represents the API response for GET /health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
