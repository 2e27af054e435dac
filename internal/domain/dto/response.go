package dto

import (
	"net/http"
	"time"
)

const (
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeInternal         = "internal_error"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeRateLimit        = "rate_limit_exceeded"
	ErrCodeTimeout          = "timeout"
	ErrCodeUnavailable      = "service_unavailable"
	ErrCodeConfiguration    = "server_configuration_error"
	// Carrier failure codes.
	ErrCodeCarrierAuth        = "carrier_authentication_error"
	ErrCodeCarrierProtocol    = "carrier_protocol_error"
	ErrCodeCarrierApplication = "carrier_application_error"
)

// SuccessResponse wraps successful responses of the gateway's own endpoints.
// Carrier responses are forwarded verbatim and never wrapped.
// @Description Successful API response wrapper
type SuccessResponse struct {
	Data      interface{} `json:"data" swaggertype:"object"`
	RequestID string      `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time   `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the normalized error body.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"carrier_application_error"`
	Message string `json:"message,omitempty" example:"Multiple problems found; postalCode is required"`
	// Details carries missing fields, the carrier's own error body or its raw text.
	Details   map[string]interface{} `json:"details,omitempty" swaggertype:"object"`
	RequestID string                 `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time              `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetail adds one entry to Details.
func (e ErrorResponse) WithDetail(key string, value interface{}) ErrorResponse {
	details := make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusMethodNotAllowed:
		return ErrCodeMethodNotAllowed
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	default:
		return ErrCodeInternal
	}
}

// AuditLogPage is one page of an admin log search, audit rows or request logs.
// @Description Page of audit rows or request logs
type AuditLogPage struct {
	Items  interface{} `json:"items" swaggertype:"array,object"`
	Count  int         `json:"count" example:"2"`
	Limit  int         `json:"limit" example:"100"`
	Offset int         `json:"offset" example:"0"`
} // @name AuditLogPage
