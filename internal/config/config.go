package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Catalog
	CatalogAPIURL    string
	CatalogMaterials []string
	CatalogPageSize  int
	CatalogTimeout   time.Duration

	// Stripe
	StripeSecretKey     string
	StripeWebhookSecret string
	PaintingSurcharge   string
	Currency            string

	// Admin sessions
	AdminUsername     string
	AdminPasswordHash string
	SessionSecret     string
	SessionTTL        time.Duration

	// Supabase storage
	SupabaseURL           string
	SupabaseServiceKey    string
	SupabaseStorageBucket string

	// Persistence
	DatabaseURL string
	RedisURL    string
	CartTTL     time.Duration

	// Telemetry
	OTelExporter string
	OTelEndpoint string
	ServiceName  string

	// Server
	Port        string
	Environment string
	BaseURL     string
}

func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		CatalogAPIURL:    getEnv("CATALOG_API_URL", "https://www.reapermini.com/api/productlist"),
		CatalogMaterials: getEnvList("CATALOG_MATERIALS", []string{"metal", "plastic"}),
		CatalogPageSize:  getEnvInt("CATALOG_PAGE_SIZE", 40),
		CatalogTimeout:   getEnvDuration("CATALOG_TIMEOUT", 30*time.Second),

		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		PaintingSurcharge:   getEnv("PAINTING_SURCHARGE", "10.00"),
		Currency:            getEnv("CURRENCY", "usd"),

		AdminUsername:     getEnv("ADMIN_USERNAME", "artist"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		SessionSecret:     getEnv("SESSION_SECRET", ""),
		SessionTTL:        getEnvDuration("SESSION_TTL", 24*time.Hour),

		SupabaseURL:           getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:    getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseStorageBucket: getEnv("SUPABASE_STORAGE_BUCKET", "product-images"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
		CartTTL:     getEnvDuration("CART_TTL", 30*24*time.Hour),

		OTelExporter: getEnv("OTEL_EXPORTER", "none"),
		OTelEndpoint: getEnv("OTEL_ENDPOINT", "localhost:4317"),
		ServiceName:  getEnv("SERVICE_NAME", "minis-storefront"),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.StripeSecretKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if c.StripeWebhookSecret == "" {
		return fmt.Errorf("STRIPE_WEBHOOK_SECRET is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}
	if c.CatalogPageSize < 1 {
		return fmt.Errorf("CATALOG_PAGE_SIZE must be positive")
	}
	if len(c.CatalogMaterials) == 0 {
		return fmt.Errorf("CATALOG_MATERIALS must list at least one material")
	}
	return nil
}

// StorageEnabled reports whether blob storage credentials are configured.
func (c *Config) StorageEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseServiceKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
