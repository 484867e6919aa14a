package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imeelinew/paper-library/internal/entities"
)

const testSecret = "middleware-test-secret"

func setupRouter(roles ...entities.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{RequireAuth(testSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		identity, _ := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"username": identity.Username})
	})

	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	router := setupRouter()

	t.Run("rejects a missing token", func(t *testing.T) {
		w := doRequest(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects an invalid token", func(t *testing.T) {
		w := doRequest(router, "garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("accepts a valid token and exposes the identity", func(t *testing.T) {
		token, err := IssueToken(testSecret, Identity{ID: 1, Username: "admin", Role: entities.UserRoleAdmin}, time.Hour)
		require.NoError(t, err)

		w := doRequest(router, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "admin")
	})

	t.Run("fails closed when the secret is unset", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/protected", RequireAuth(""), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := doRequest(router, "anything")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	router := setupRouter(entities.UserRoleAdmin, entities.UserRoleSuperadmin)

	t.Run("rejects a plain user", func(t *testing.T) {
		token, err := IssueToken(testSecret, Identity{ID: 2, Username: "reader", Role: entities.UserRoleUser}, time.Hour)
		require.NoError(t, err)

		w := doRequest(router, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admits an admin", func(t *testing.T) {
		token, err := IssueToken(testSecret, Identity{ID: 1, Username: "admin", Role: entities.UserRoleAdmin}, time.Hour)
		require.NoError(t, err)

		w := doRequest(router, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admits a superadmin", func(t *testing.T) {
		token, err := IssueToken(testSecret, Identity{ID: 3, Username: "root", Role: entities.UserRoleSuperadmin}, time.Hour)
		require.NoError(t, err)

		w := doRequest(router, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
