package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func CorsMiddleware(c *gin.Context) {
	switch {
	case strings.HasPrefix(c.Request.URL.Path, "/debug"):
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	case strings.HasPrefix(c.Request.URL.Path, "/api/stream"):
		// SSE endpoint
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:3000")
	default:
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:3000")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
	}

	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(204)
		return
	}

	c.Next()
}
