// @title           Minis Storefront API
// @version         1.0.0
// @description     Backend for the miniature-figure storefront: figure finder, carts, checkout, payment webhooks and the artist's admin dashboard.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin session token.

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"minis-storefront/internal/cart"
	"minis-storefront/internal/catalog"
	"minis-storefront/internal/config"
	"minis-storefront/internal/database"
	"minis-storefront/internal/handlers"
	"minis-storefront/internal/payments"
	"minis-storefront/internal/services"
	"minis-storefront/internal/supabase"
	"minis-storefront/internal/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Exporter:    cfg.OTelExporter,
		Endpoint:    cfg.OTelEndpoint,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	// Database and migrations
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db).Run(ctx); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully")

	healthChecks := map[string]handlers.HealthCheck{"database": db.PingContext}

	// Carts live in Redis; without it they fall back to process memory.
	var persister cart.Persister
	redisClient, err := cart.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Redis unavailable (%v). Carts will be kept in memory.", err)
		persister = cart.NewMemoryPersister()
	} else {
		defer redisClient.Close()
		persister = cart.NewRedisPersister(redisClient, cfg.CartTTL)
		healthChecks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	carts := cart.NewStore(persister)

	// Blob storage is optional; image uploads return 503 without it.
	var blobs services.BlobStore
	if cfg.StorageEnabled() {
		storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
		if err != nil {
			log.Fatalf("Failed to initialize storage client: %v", err)
		}
		blobs = storageClient
	} else {
		log.Println("Warning: SUPABASE_URL or SUPABASE_SERVICE_KEY not set. Product image uploads are disabled.")
	}

	gateway := payments.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	checkoutService, err := services.NewCheckoutService(gateway, cfg.PaintingSurcharge, cfg.Currency, cfg.BaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize checkout: %v", err)
	}
	orderService := services.NewOrderService(gateway, database.NewOrderRepository(db))
	productService := services.NewProductService(database.NewProductRepository(db), blobs)
	authService := services.NewAuthService(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.SessionSecret, cfg.SessionTTL)

	finder := catalog.NewFinder(
		catalog.NewSource(cfg.CatalogAPIURL, cfg.CatalogMaterials, cfg.CatalogTimeout),
		catalog.DefaultFacets(),
		cfg.CatalogPageSize,
	)

	// Setup router
	router := gin.New()

	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	handlers.Routes{
		Health:   handlers.NewHealthHandler(healthChecks),
		Catalog:  handlers.NewCatalogHandler(finder),
		Cart:     handlers.NewCartHandler(carts),
		Checkout: handlers.NewCheckoutHandler(checkoutService, carts),
		Webhook:  handlers.NewWebhookHandler(orderService),
		Auth:     handlers.NewAdminAuthHandler(authService),
		Orders:   handlers.NewAdminOrdersHandler(orderService),
		Products: handlers.NewProductsHandler(productService),
		Verifier: authService,
	}.Register(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(router, cfg.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("Tracing shutdown error: %v", err)
	}
}
