package rmiddleware

import (
	"net/http"
	"strings"

	"github.com/DhavalSuthar-24/livescore/internal/common"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware admits callers whose token role matches one of requiredRoles.
// It must run after middleware.AuthMiddleware.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := common.GetUserIDFromContext(c); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}

		role := common.GetRoleFromContext(c)
		for _, required := range requiredRoles {
			if role != "" && strings.EqualFold(role, required) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":    "You don't have permission to access this resource",
			"required": requiredRoles,
		})
	}
}

// OrganizerOrAdminMiddleware admits the roles allowed to set up matches.
func OrganizerOrAdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware("organizer", "admin")
}
