package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DebugAuthMiddleware guards the debug endpoints with a shared API key.
// With no key configured the endpoints are disabled entirely.
func DebugAuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" || c.Request.Header.Get("X-API-Key") != apiKey {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
