package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"minis-storefront/internal/cart"
	"minis-storefront/internal/models"
	"minis-storefront/internal/services"
)

type CheckoutHandler struct {
	checkout *services.CheckoutService
	carts    *cart.Store
}

func NewCheckoutHandler(checkout *services.CheckoutService, carts *cart.Store) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, carts: carts}
}

// CreateSession godoc
// @Summary     Start checkout
// @Description Creates a hosted payment session for the cart. The cart is left untouched until payment succeeds.
// @Tags        checkout
// @Accept      json
// @Produce     json
// @Param       request body models.CheckoutRequest true "Cart contents"
// @Success     200 {object} models.CheckoutResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /checkout [post]
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	resp, err := h.checkout.CreateSession(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Success godoc
// @Summary     Checkout success landing
// @Description Clears the cart named by cart_id, but only when the redirect carries a session_id.
// @Tags        checkout
// @Produce     json
// @Param       session_id query string false "Payment session ID"
// @Param       cart_id    query string false "Cart ID"
// @Success     200 {object} models.SuccessResponse
// @Router      /checkout/success [get]
func (h *CheckoutHandler) Success(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusOK, models.SuccessResponse{Success: false, Message: "no checkout session"})
		return
	}

	if cartID := c.Query("cart_id"); cartID != "" {
		if err := h.carts.Clear(c.Request.Context(), cartID); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "order placed"})
}
