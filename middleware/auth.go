package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"villa-backend/services"
)

// ContextAdminKey is the gin context key under which the authenticated
// admin is stored by RequireAdmin.
const ContextAdminKey = "admin"

// RequireAdmin rejects requests that do not carry a valid, unexpired
// session token in the Authorization header.
func RequireAdmin(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authorization required"})
			return
		}

		admin, err := auth.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "session expired or invalid"})
			return
		}

		c.Set(ContextAdminKey, admin)
		c.Next()
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	// accept a bare token as well
	return strings.TrimSpace(header)
}
