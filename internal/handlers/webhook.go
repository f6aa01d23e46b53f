package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"minis-storefront/internal/models"
	"minis-storefront/internal/services"
)

// maxWebhookBody matches the payload ceiling Stripe documents for events.
const maxWebhookBody = 512 << 10

type WebhookHandler struct {
	orders *services.OrderService
}

func NewWebhookHandler(orders *services.OrderService) *WebhookHandler {
	return &WebhookHandler{orders: orders}
}

// HandleStripe godoc
// @Summary     Stripe webhook endpoint
// @Description Receives payment events. The Stripe-Signature header is verified before anything else. A completed checkout session becomes one order per purchased line; redelivery is harmless.
// @Tags        webhooks
// @Accept      json
// @Produce     json
// @Param       Stripe-Signature header string true "Webhook signature"
// @Success     200 {object} map[string]bool "received"
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /webhooks/stripe [post]
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read request body",
			Message: err.Error(),
		})
		return
	}

	result, err := h.orders.HandleWebhook(c.Request.Context(), body, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			slog.Warn("rejected webhook", "error", err)
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Webhook Error", Message: detail(err, services.ErrValidation)})
			return
		}
		// A 5xx makes Stripe redeliver, which is safe because inserts are idempotent.
		slog.Error("webhook processing failed", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Webhook handler failed"})
		return
	}

	if result.Inserted > 0 {
		slog.Info("orders recorded", "event", result.EventType, "lines", len(result.Orders), "inserted", result.Inserted)
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
