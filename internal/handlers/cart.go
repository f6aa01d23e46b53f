package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"minis-storefront/internal/cart"
	"minis-storefront/internal/models"
)

type CartHandler struct {
	store *cart.Store
}

func NewCartHandler(store *cart.Store) *CartHandler {
	return &CartHandler{store: store}
}

// Create godoc
// @Summary     Create a cart
// @Description Issues a new, empty cart id. Clients keep it in browser storage.
// @Tags        cart
// @Produce     json
// @Success     201 {object} models.CartResponse
// @Router      /carts [post]
func (h *CartHandler) Create(c *gin.Context) {
	c.JSON(http.StatusCreated, models.CartResponse{
		CartID: cart.NewCartID(),
		Items:  []models.CartLineItem{},
		Total:  cart.Total(nil),
	})
}

// Get godoc
// @Summary     Get cart contents
// @Tags        cart
// @Produce     json
// @Param       cart_id path string true "Cart ID"
// @Success     200 {object} models.CartResponse
// @Router      /carts/{cart_id} [get]
func (h *CartHandler) Get(c *gin.Context) {
	cartID := c.Param("cart_id")
	items, err := h.store.Items(c.Request.Context(), cartID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(cartID, items))
}

// AddItem godoc
// @Summary     Add a figure to the cart
// @Description Adds a configured product. Omitted colours take the storefront defaults.
// @Tags        cart
// @Accept      json
// @Produce     json
// @Param       cart_id path string                    true "Cart ID"
// @Param       request body models.AddCartItemRequest true "Item"
// @Success     201 {object} models.CartLineItem
// @Failure     400 {object} models.ErrorResponse
// @Router      /carts/{cart_id}/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	item, err := h.store.Add(c.Request.Context(), c.Param("cart_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateItem godoc
// @Summary     Update a cart line
// @Description Sets one colour field (field/value) or the special instructions (specificDetails).
// @Tags        cart
// @Accept      json
// @Produce     json
// @Param       cart_id path string                       true "Cart ID"
// @Param       item_id path string                       true "Line item ID"
// @Param       request body models.UpdateCartItemRequest true "Update"
// @Success     200 {object} models.CartLineItem
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /carts/{cart_id}/items/{item_id} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	ctx := c.Request.Context()
	cartID, itemID := c.Param("cart_id"), c.Param("item_id")

	var (
		item models.CartLineItem
		err  error
	)
	switch {
	case req.Details != nil:
		item, err = h.store.UpdateDetails(ctx, cartID, itemID, *req.Details)
	case req.Field != "":
		item, err = h.store.UpdateColor(ctx, cartID, itemID, req.Field, req.Value)
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "field or specificDetails is required"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// RemoveItem godoc
// @Summary     Remove a cart line
// @Tags        cart
// @Produce     json
// @Param       cart_id path string true "Cart ID"
// @Param       item_id path string true "Line item ID"
// @Success     200 {object} models.CartResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /carts/{cart_id}/items/{item_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	ctx := c.Request.Context()
	cartID := c.Param("cart_id")

	if err := h.store.Remove(ctx, cartID, c.Param("item_id")); err != nil {
		respondError(c, err)
		return
	}

	items, err := h.store.Items(ctx, cartID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(cartID, items))
}

// Clear godoc
// @Summary     Empty the cart
// @Tags        cart
// @Produce     json
// @Param       cart_id path string true "Cart ID"
// @Success     200 {object} models.CartResponse
// @Router      /carts/{cart_id} [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	cartID := c.Param("cart_id")
	if err := h.store.Clear(c.Request.Context(), cartID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(cartID, nil))
}

// Events godoc
// @Summary     Cart badge feed
// @Description Server-sent events carrying the item count and total. The current state is sent first, then one event per change.
// @Tags        cart
// @Produce     text/event-stream
// @Param       cart_id path string true "Cart ID"
// @Success     200 {object} cart.Event
// @Router      /carts/{cart_id}/events [get]
func (h *CartHandler) Events(c *gin.Context) {
	ctx := c.Request.Context()
	cartID := c.Param("cart_id")

	// Subscribe before reading so no change between the two is missed.
	events, cancel := h.store.Subscribe(cartID)
	defer cancel()

	items, err := h.store.Items(ctx, cartID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("cart", cart.Event{CartID: cartID, Count: len(items), Total: cart.Total(items)})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("cart", ev)
			return true
		}
	})
}

func cartResponse(cartID string, items []models.CartLineItem) models.CartResponse {
	if items == nil {
		items = []models.CartLineItem{}
	}
	return models.CartResponse{
		CartID: cartID,
		Items:  items,
		Count:  len(items),
		Total:  cart.Total(items),
	}
}
