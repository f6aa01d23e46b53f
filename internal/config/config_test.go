package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"minis-storefront/internal/config"
)

func setRequired(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_123")
	t.Setenv("DATABASE_URL", "postgres://localhost/minis")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$hash")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.CatalogPageSize)
	assert.Equal(t, []string{"metal", "plastic"}, cfg.CatalogMaterials)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.StorageEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("CATALOG_PAGE_SIZE", "12")
	t.Setenv("CATALOG_MATERIALS", "metal, resin ,")
	t.Setenv("SESSION_TTL", "2h")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.CatalogPageSize)
	assert.Equal(t, []string{"metal", "resin"}, cfg.CatalogMaterials)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("STRIPE_WEBHOOK_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STRIPE_WEBHOOK_SECRET")
}
