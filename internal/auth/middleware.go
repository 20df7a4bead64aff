package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/nutrio/server/internal/httperr"
)

// validates the bearer token and adds the caller identity to the context
func (v *Verifier) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c)
			return
		}

		claims, err := v.ValidateToken(parts[1])
		if err != nil {
			httperr.Unauthorized(c)
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}

// extracts the caller identity from context after Middleware
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		return "", false
	}

	return userID, true
}
