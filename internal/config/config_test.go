package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SECRET", "HTTP_PORT", "DATABASE_DSN", "MEDICINE_CATALOG", "TAX_RATE", "TOKEN_TTL", "CORS_ORIGINS", "TIMEZONE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "dev_secret", cfg.Secret)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.Empty(t, cfg.CatalogPath)
	assert.Equal(t, 0.10, cfg.TaxRate)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, time.Local, cfg.Location)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SECRET", "s3cret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("TAX_RATE", "0.05")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("MEDICINE_CATALOG", "assets/medicines.csv")

	cfg := Load()
	assert.Equal(t, "s3cret", cfg.Secret)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 0.05, cfg.TaxRate)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, "assets/medicines.csv", cfg.CatalogPath)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	t.Setenv("TAX_RATE", "-1")
	t.Setenv("TOKEN_TTL", "soon")
	t.Setenv("TIMEZONE", "Nowhere/Special")

	cfg := Load()
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 0.10, cfg.TaxRate)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Local, cfg.Location)
}
