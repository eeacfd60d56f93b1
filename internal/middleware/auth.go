package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"societyportal/internal/services"
)

// ContextUserKey is where AuthMiddleware stores the resolved *models.User.
const ContextUserKey = "user"

// accessTokenFrom reads the bearer token from the Authorization header, or
// falls back to the accessToken cookie the SPA keeps.
func accessTokenFrom(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie("accessToken"); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

// AuthMiddleware validates the access token and resolves the identity it
// carries against the credential store before the handler runs.
func AuthMiddleware(auth services.AuthService, users services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		tokenStr := accessTokenFrom(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token not found"})
			return
		}

		claims, err := auth.ParseToken(tokenStr, services.TokenUseAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := users.GetUserByID(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}
