package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"minis-storefront/internal/cart"
	"minis-storefront/internal/catalog"
	"minis-storefront/internal/models"
	"minis-storefront/internal/services"
)

// respondError maps domain errors onto status codes and the JSON error
// body. Unknown errors become 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrCatalogUnavailable):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "catalog unavailable", Retryable: true})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: detail(err, services.ErrValidation)})
	case errors.Is(err, cart.ErrInvalidItem), errors.Is(err, cart.ErrInvalidColor), errors.Is(err, cart.ErrUnknownField):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrNotFound), errors.Is(err, cart.ErrItemNotFound), errors.Is(err, catalog.ErrProductNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found", Message: err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: detail(err, services.ErrConflict)})
	case errors.Is(err, services.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "session expired", Message: "please log in again"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: detail(err, services.ErrUnauthorized)})
	case errors.Is(err, services.ErrGateway):
		slog.Error("payment gateway failure", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "payment gateway error", Retryable: true})
	case errors.Is(err, services.ErrStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
	}
}

// detail strips the sentinel prefix so clients see only the specific reason.
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}
