// Package middleware provides the gin middleware stack of the shipping gateway.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thcfit/shipping-gateway/internal/service"
)

const (
	// RequestIDHeader is the HTTP header name for request ID.
	RequestIDHeader = "X-Request-ID"
	// maxRequestIDLength bounds caller-supplied IDs.
	maxRequestIDLength = 128
)

// ContextKey type for gin context keys.
type ContextKey string

const (
	// RequestIDKey holds the request ID.
	RequestIDKey ContextKey = "request_id"
	// AdminKey holds the username of an authenticated admin.
	AdminKey ContextKey = "admin"
	// ActionKey holds the carrier action a handler is serving.
	ActionKey ContextKey = "carrier_action"
)

// RequestID ensures each request has an ID. A caller-supplied X-Request-ID is
// reused, otherwise a UUID v4 is generated. The ID is also placed on the
// request context so services can log and audit with it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.New().String()
		}

		c.Set(string(RequestIDKey), requestID)
		c.Request = c.Request.WithContext(service.ContextWithRequestID(c.Request.Context(), requestID))
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID retrieves the request ID from the gin context.
func GetRequestID(c *gin.Context) string {
	return stringValue(c, RequestIDKey)
}

// GetAdmin returns the authenticated admin username, if any.
func GetAdmin(c *gin.Context) string {
	return stringValue(c, AdminKey)
}

// SetAction tags the request with the carrier action it serves.
func SetAction(c *gin.Context, action string) {
	c.Set(string(ActionKey), action)
}

// GetAction returns the carrier action set by the handler, if any.
func GetAction(c *gin.Context) string {
	return stringValue(c, ActionKey)
}

func stringValue(c *gin.Context, key ContextKey) string {
	if v, exists := c.Get(string(key)); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
