package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"minis-storefront/internal/middleware"
	"minis-storefront/internal/models"
	"minis-storefront/internal/services"
)

const secret = "test-secret-key-for-jwt-signing-must-be-long-enough"

func setupRouter(t *testing.T) (*gin.Engine, *services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("brushes"), bcrypt.MinCost)
	require.NoError(t, err)
	auth := services.NewAuthService("artist", string(hash), secret, 24*time.Hour)

	router := gin.New()
	router.Use(middleware.AdminAuth(auth))
	router.GET("/test", func(c *gin.Context) {
		admin, exists := c.Get(middleware.AdminKey)
		assert.True(t, exists)
		assert.Equal(t, "artist", admin)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router, auth
}

func get(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminAuth_NoToken(t *testing.T) {
	router, _ := setupRouter(t)

	w := get(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing authorization header")
}

func TestAdminAuth_BadHeaderFormat(t *testing.T) {
	router, _ := setupRouter(t)

	assert.Equal(t, http.StatusUnauthorized, get(router, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, get(router, "Bearer").Code)
}

func TestAdminAuth_InvalidToken(t *testing.T) {
	router, _ := setupRouter(t)

	w := get(router, "Bearer invalid-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestAdminAuth_ExpiredToken(t *testing.T) {
	router, _ := setupRouter(t)
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "artist",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte(secret))

	w := get(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "session expired")
}

func TestAdminAuth_ValidToken(t *testing.T) {
	router, auth := setupRouter(t)
	resp, err := auth.Login(models.LoginRequest{Username: "artist", Password: "brushes"})
	require.NoError(t, err)

	w := get(router, "Bearer "+resp.Token)

	assert.Equal(t, http.StatusOK, w.Code)
}
