package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/praxishq/praxis-api/internal/presentation/http/dto/response"
)

// CronAuth guards scheduler endpoints with a shared bearer secret. Requests
// from the platform scheduler carry the secret instead of a user token.
func CronAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			response.Unauthorized(c, "Cron endpoint is not configured")
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(secret)) != 1 {
			response.Unauthorized(c, "Invalid cron secret")
			c.Abort()
			return
		}

		c.Next()
	}
}
