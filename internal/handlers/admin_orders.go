package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"minis-storefront/internal/models"
	"minis-storefront/internal/services"
)

type AdminOrdersHandler struct {
	orders *services.OrderService
}

func NewAdminOrdersHandler(orders *services.OrderService) *AdminOrdersHandler {
	return &AdminOrdersHandler{orders: orders}
}

// List godoc
// @Summary     List orders
// @Description Returns every order, newest first
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.OrderListResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /admin/orders [get]
func (h *AdminOrdersHandler) List(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, models.OrderListResponse{Orders: orders})
}

// SetCompleted godoc
// @Summary     Mark an order completed
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UpdateOrderRequest true "Order and flag"
// @Success     200 {object} models.SuccessResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/orders [patch]
func (h *AdminOrdersHandler) SetCompleted(c *gin.Context) {
	var req models.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if err := h.orders.SetCompleted(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// Delete godoc
// @Summary     Delete an order
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       id query string true "Order ID"
// @Success     200 {object} models.SuccessResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/orders [delete]
func (h *AdminOrdersHandler) Delete(c *gin.Context) {
	if err := h.orders.DeleteOrder(c.Request.Context(), c.Query("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
