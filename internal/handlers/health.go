package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"minis-storefront/internal/models"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether one backing service is reachable.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
}

// NewHealthHandler reports on the named backing services. With no checks
// it only confirms the process is serving.
func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Check godoc
// @Summary     Health check
// @Description Returns the health of the API and of its database and cart store
// @Tags        health
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Failure     503 {object} models.HealthResponse
// @Router      /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	response := models.HealthResponse{Status: "ok"}
	if len(h.checks) == 0 {
		c.JSON(http.StatusOK, response)
		return
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	response.Checks = make(map[string]string, len(names))
	status := http.StatusOK
	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		err := h.checks[name](ctx)
		cancel()

		if err != nil {
			slog.Warn("health check failed", "check", name, "error", err)
			response.Checks[name] = "unavailable"
			response.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		response.Checks[name] = "ok"
	}

	c.JSON(status, response)
}
