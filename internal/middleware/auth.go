package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Adam-Mik/Projekt-zespolowy/internal/auth"
)

const (
	// UserIDKey is the gin context key for the authenticated user ID.
	UserIDKey = "user_id"
	// UsernameKey is the gin context key for the authenticated username.
	UsernameKey = "username"
)

// UserID extracts the authenticated user ID from the context.
// Returns empty string if not found.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// RequireAuth returns a middleware that validates bearer tokens and requires
// authentication. It extracts the token from the Authorization header,
// validates it, and stores the user ID and username on the request context.
// Both "Bearer <token>" and the DRF-style "Token <token>" schemes the mobile
// client sends are accepted.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": auth.ErrMissingToken.Error()})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || (parts[0] != "Bearer" && parts[0] != "Token") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": auth.ErrInvalidToken.Error()})
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": auth.ErrInvalidToken.Error()})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Next()
	}
}
