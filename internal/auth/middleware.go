package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/imeelinew/paper-library/internal/entities"
)

// ContextKeyIdentity is where the middleware stores the caller's Identity.
const ContextKeyIdentity = "auth_identity"

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func abortWith(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, envelope{Code: status, Message: message, Data: nil})
}

// RequireAuth verifies the bearer token and attaches the caller's Identity
// to the context. Requests without a valid token are rejected with 401.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			abortWith(c, http.StatusInternalServerError, "JWT_SECRET is not configured")
			return
		}

		header := c.GetHeader("Authorization")
		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if tokenStr == "" {
			abortWith(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		identity, err := ParseToken(secret, tokenStr)
		if err != nil {
			abortWith(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ContextKeyIdentity, identity)
		c.Next()
	}
}

// RequireRoles rejects callers whose role is not in the allowed set. Must
// run after RequireAuth.
func RequireRoles(roles ...entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			abortWith(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		abortWith(c, http.StatusForbidden, "Forbidden")
	}
}

// GetIdentity extracts the authenticated Identity from the Gin context.
func GetIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}
