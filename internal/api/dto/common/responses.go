package common

import "time"

// ErrorResponse is the body returned by the chat endpoint and the
// cross-cutting middleware when a request is refused
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// Define type for error codes to enforce consistency
type ErrorCode string

// Standard error codes
const (
	ErrCodeInternalServer  ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrCodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"
	ErrCodeTooLarge        ErrorCode = "PAYLOAD_TOO_LARGE"
)

// NewErrorResponse creates a new error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// NewCodedErrorResponse creates an error response carrying a machine-readable code
func NewCodedErrorResponse(code ErrorCode, message string) ErrorResponse {
	return ErrorResponse{Error: message, Code: string(code)}
}

// NewHealthResponse creates a health payload stamped with now in UTC
func NewHealthResponse(status, version string, now time.Time) HealthResponse {
	return HealthResponse{
		Status:    status,
		Version:   version,
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}
