package handlers

import (
	"github.com/gin-gonic/gin"
	"minis-storefront/internal/middleware"
)

// Routes groups the handlers mounted on the router. A nil handler leaves
// its routes unregistered.
type Routes struct {
	Health   *HealthHandler
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Webhook  *WebhookHandler
	Auth     *AdminAuthHandler
	Orders   *AdminOrdersHandler
	Products *ProductsHandler
	Verifier middleware.TokenVerifier
}

func (r Routes) Register(router *gin.Engine) {
	// Health check (no auth)
	health := r.Health
	if health == nil {
		health = NewHealthHandler(nil)
	}
	router.GET("/health", health.Check)

	api := router.Group("/api/v1")
	if r.Catalog != nil {
		api.GET("/figurefinder", r.Catalog.Browse)
		api.GET("/catalog/:sku", r.Catalog.Product)
	}
	if r.Cart != nil {
		api.POST("/carts", r.Cart.Create)
		api.GET("/carts/:cart_id", r.Cart.Get)
		api.DELETE("/carts/:cart_id", r.Cart.Clear)
		api.GET("/carts/:cart_id/events", r.Cart.Events)
		api.POST("/carts/:cart_id/items", r.Cart.AddItem)
		api.PATCH("/carts/:cart_id/items/:item_id", r.Cart.UpdateItem)
		api.DELETE("/carts/:cart_id/items/:item_id", r.Cart.RemoveItem)
	}
	if r.Checkout != nil {
		api.POST("/checkout", r.Checkout.CreateSession)
		api.GET("/checkout/success", r.Checkout.Success)
	}
	// Webhook (no auth, uses the Stripe signature)
	if r.Webhook != nil {
		api.POST("/webhooks/stripe", r.Webhook.HandleStripe)
	}

	if r.Products != nil {
		router.GET("/api/premade-products", r.Products.List)
	}
	if r.Auth != nil {
		router.POST("/api/admin/auth", r.Auth.Login)
	}

	if r.Verifier == nil {
		return
	}
	admin := router.Group("/api/admin")
	admin.Use(middleware.AdminAuth(r.Verifier))
	if r.Orders != nil {
		admin.GET("/orders", r.Orders.List)
		admin.PATCH("/orders", r.Orders.SetCompleted)
		admin.DELETE("/orders", r.Orders.Delete)
	}
	if r.Products != nil {
		admin.GET("/premade-products", r.Products.List)
		admin.POST("/premade-products", r.Products.Create)
		admin.PATCH("/premade-products", r.Products.Update)
		admin.DELETE("/premade-products", r.Products.Delete)
		admin.POST("/premade-products/image", r.Products.UploadImage)
		admin.POST("/seed-products", r.Products.Seed)
	}
}
