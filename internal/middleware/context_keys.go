package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey prevents collisions with keys set by other packages.
type contextKey string

const (
	loggerCtxKey    = contextKey("logger")
	accountIDCtxKey = contextKey("accountID")
)

// GetAccountIDFromContext retrieves the authenticated account ID from the Gin context.
// It returns the account ID and a boolean indicating if it was found.
func GetAccountIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(accountIDCtxKey)); exists {
		accountID, ok := v.(string)
		return accountID, ok && accountID != ""
	}
	return AccountIDFromCtx(c.Request.Context())
}

// AccountIDFromCtx retrieves the authenticated account ID from a standard context.
func AccountIDFromCtx(ctx context.Context) (string, bool) {
	accountID, ok := ctx.Value(accountIDCtxKey).(string)
	return accountID, ok && accountID != ""
}
