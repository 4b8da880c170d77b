package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// ContextKey names values stored on the gin context by this package.
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	// ClientIDKey holds the authenticated client, set by the auth middleware.
	ClientIDKey ContextKey = "client_id"
)

// RequestID tags every request with an id. An incoming X-Request-ID is
// kept when it is short and made of URL-safe characters; anything else is
// replaced with a random UUID so it can be logged and echoed safely.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !acceptableRequestID(id) {
			id = uuid.NewString()
		}

		c.Set(string(RequestIDKey), id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func acceptableRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == ':':
		default:
			return false
		}
	}
	return true
}

// GetRequestID returns the id assigned by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(string(RequestIDKey))
}

// GetClientID returns the authenticated client id, or "" for public routes.
func GetClientID(c *gin.Context) string {
	return c.GetString(string(ClientIDKey))
}
