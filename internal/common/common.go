package common

import (
	"errors"

	"github.com/gin-gonic/gin"
)

const (
	// Context keys
	ContextUserIDKey = "userID"   // authenticated user id (uint)
	ContextRoleKey   = "userRole" // role claim from the access token
)

var ErrNoUser = errors.New("user ID not found in context")

// GetUserIDFromContext retrieves the authenticated user's ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	userIDInterface, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, ErrNoUser
	}
	userID, ok := userIDInterface.(uint)
	if !ok || userID == 0 {
		return 0, errors.New("user ID in context is not a valid uint")
	}
	return userID, nil
}

// GetRoleFromContext returns the role claim, or "" when none was set.
func GetRoleFromContext(c *gin.Context) string {
	return c.GetString(ContextRoleKey)
}
