package server

import (
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	ErrorCodeInvalidJSON        ErrorCode = "INVALID_JSON"
	ErrorCodeInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrorCodeInvalidPreferences ErrorCode = "INVALID_PREFERENCES"
	ErrorCodeInvalidStrategy    ErrorCode = "INVALID_STRATEGY"
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
)

// APIError represents a standardized API error response
type APIError struct {
	Error     string    `json:"error"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// SendError aborts the request with a standardized error body carrying the request id
func SendError(c *gin.Context, status int, code ErrorCode, message string) {
	c.AbortWithStatusJSON(status, &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		RequestID: c.GetString(requestIDKey),
	})
}
