package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gosafe-transit/service-routes/internal/auth"
)

const userIDKey = "userID"

// AuthMiddleware rejects requests without a valid Bearer token.
func AuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromHeader(c, jwtManager)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided."})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the user ID when a valid Bearer token is
// present and lets the request proceed anonymously otherwise. Used on
// endpoints that personalize (history persistence) without requiring login.
func OptionalAuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := userIDFromHeader(c, jwtManager); ok {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID, if any.
func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func userIDFromHeader(c *gin.Context, jwtManager *auth.JWTManager) (int64, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return 0, false
	}
	userID, _, err := jwtManager.Verify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return 0, false
	}
	return userID, true
}
