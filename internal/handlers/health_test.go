package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"minis-storefront/internal/handlers"
	"minis-storefront/internal/models"
)

func healthRouter(checks map[string]handlers.HealthCheck) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", handlers.NewHealthHandler(checks).Check)
	return router
}

func TestHealthHandler(t *testing.T) {
	router := healthRouter(nil)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestHealthHandler_ReportsBackingServices(t *testing.T) {
	router := healthRouter(map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error { return nil },
		"redis":    func(ctx context.Context) error { return nil },
	})

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.HealthResponse](t, w)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]string{"database": "ok", "redis": "ok"}, resp.Checks)
}

func TestHealthHandler_DegradedWhenCheckFails(t *testing.T) {
	router := healthRouter(map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error { return errors.New("dial tcp: connection refused") },
		"redis":    func(ctx context.Context) error { return nil },
	})

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode[models.HealthResponse](t, w)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unavailable", resp.Checks["database"])
	assert.Equal(t, "ok", resp.Checks["redis"])
	assert.NotContains(t, w.Body.String(), "connection refused")
}
