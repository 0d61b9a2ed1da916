package support

import "github.com/zhouzirui/support-line/internal/analysis/risk"

// Request is the body accepted by POST /api/support.
type Request struct {
	Message  string `json:"message"`
	ClientID string `json:"client_id,omitempty"`
}

// Response is returned on success.
type Response struct {
	Message   string     `json:"message"`
	RiskLevel risk.Level `json:"risk_level"`
}

// ErrorResponse carries the fixed error strings of the endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

const (
	ErrNoJSONData     = "No JSON data received"
	ErrEmptyMessage   = "Empty message"
	ErrInternalServer = "Internal server error"
)
