package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userId"

// RequireUser extracts the authenticated user ID set by the upstream auth
// layer. Requests without it are rejected; the handlers never see an
// anonymous actor.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "User not authenticated",
			})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}
