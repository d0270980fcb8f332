package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for values stored in a request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	userRoleKey  = contextKey("userRole")
)

// WithUserID stores the authenticated user id in ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromCtx returns the authenticated user id stored in ctx, if any.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin request.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if c.Request == nil {
		return "", false
	}
	return UserIDFromCtx(c.Request.Context())
}

// GetUserRoleFromContext returns the role claim of the current session.
func GetUserRoleFromContext(c *gin.Context) string {
	role, _ := c.Request.Context().Value(userRoleKey).(string)
	return role
}
