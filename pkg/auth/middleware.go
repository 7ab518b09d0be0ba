package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookstore/pkg/token"
)

const bearerPrefix = "Bearer "

// RequireAuth guards protected routes: 401 when no bearer token is supplied,
// 403 when verification fails. Decoded claims land in the request context.
func RequireAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "bearer token required"})
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "invalid or expired token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("login", claims.Login)
		c.Set("claims", claims)
		c.Next()
	}
}
