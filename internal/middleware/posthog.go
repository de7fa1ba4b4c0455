package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/splitledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks API events with PostHog
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		accountID, exists := GetAccountIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/debts/:debtId/lock" -> "api_v1_debts_:debtId_lock"
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		posthogClient.Enqueue(accountID, eventName, map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		})
	}
}
