package middleware

import (
	"admin_panel/internal/domain"
	"admin_panel/internal/utils"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

// probeRouter exposes one JWT-protected route and one admin-only route; the
// probe handlers echo the claims they see
func probeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(testSecret), func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "claims missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": claims.UserID, "username": claims.Username, "role": claims.Role})
	})
	r.GET("/admin", JWTAuthMiddleware(testSecret), AdminOnlyMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	// Admin middleware without the auth middleware in front of it
	r.GET("/admin-bare", AdminOnlyMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddlewareMissingHeader(t *testing.T) {
	w := get(probeRouter(), "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Not authorized, no token"}`, w.Body.String())
}

func TestJWTAuthMiddlewareMalformedHeader(t *testing.T) {
	r := probeRouter()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc") // Wrong scheme
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddlewareInvalidToken(t *testing.T) {
	w := get(probeRouter(), "/protected", "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Token invalid or expired"}`, w.Body.String())
}

func TestJWTAuthMiddlewareExpiredToken(t *testing.T) {
	token, err := utils.GenerateJWT(1, "admin", domain.RoleAdmin, testSecret, -time.Minute)
	require.NoError(t, err)
	w := get(probeRouter(), "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	// Expired and tampered tokens produce the same response
	assert.JSONEq(t, `{"message":"Token invalid or expired"}`, w.Body.String())
}

func TestJWTAuthMiddlewareAttachesClaims(t *testing.T) {
	token, err := utils.GenerateJWT(7, "bob", domain.RoleUser, testSecret, time.Hour)
	require.NoError(t, err)
	w := get(probeRouter(), "/protected", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"username":"bob","role":"user"}`, w.Body.String())
}

func TestAdminOnlyMiddlewareAllowsAdmin(t *testing.T) {
	token, err := utils.GenerateJWT(1, "admin", domain.RoleAdmin, testSecret, time.Hour)
	require.NoError(t, err)
	w := get(probeRouter(), "/admin", token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminOnlyMiddlewareRejectsUser(t *testing.T) {
	token, err := utils.GenerateJWT(7, "bob", domain.RoleUser, testSecret, time.Hour)
	require.NoError(t, err)
	w := get(probeRouter(), "/admin", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Admin access only"}`, w.Body.String())
}

func TestAdminOnlyMiddlewareWithoutClaims(t *testing.T) {
	// Reaching the admin gate without the auth gate is a 401, not a 403
	w := get(probeRouter(), "/admin-bare", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
