package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context keys defined by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
)

// GetUserIDFromContext retrieves the authenticated username from the Gin
// context. It returns the username and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if v := c.Request.Context().Value(userIDKey); v != nil {
			if username, ok := v.(string); ok {
				return username, true
			}
		}
		return "", false
	}

	username, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return username, true
}

// UserIDFromStdContext retrieves the authenticated username from a standard
// context, for callers outside the HTTP layer.
func UserIDFromStdContext(ctx context.Context) (string, bool) {
	if v := ctx.Value(userIDKey); v != nil {
		if username, ok := v.(string); ok {
			return username, true
		}
	}
	return "", false
}
