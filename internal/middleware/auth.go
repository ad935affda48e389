package middleware

import (
	"net/http"
	"strings"

	"github.com/DhavalSuthar-24/livescore/internal/common"
	"github.com/DhavalSuthar-24/livescore/pkg/token"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores the caller's user id
// and role in the context. Browsers' EventSource cannot set headers, so the
// token is also accepted from the access_token query parameter.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		claims, err := token.ValidateJWT(raw, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			return
		}

		c.Set(common.ContextUserIDKey, claims.UserID)
		c.Set(common.ContextRoleKey, claims.Role)
		c.Next()
	}
}

// bearerToken returns the raw token and whether any credential was supplied.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		q := c.Query("access_token")
		return q, q != ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", true
	}
	return parts[1], true
}
