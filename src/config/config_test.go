package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_ENV", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("PROVIDER_TIMEOUT", "")
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("STRIPE_API_KEY", "sk_test_alias")

	cfg := Load()
	assert.Equal(t, "local", cfg.ApiEnv)
	assert.True(t, cfg.IsLocal())
	assert.Equal(t, []string{"*"}, cfg.CorsOrigins)
	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, "sk_test_alias", cfg.StripeSecretKey)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_ENV", "production")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("PROVIDER_TIMEOUT", "3s")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SWEEP_INTERVAL", "not-a-duration")

	cfg := Load()
	assert.False(t, cfg.IsLocal())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CorsOrigins)
	assert.Equal(t, 3*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
}

func TestGetDSN(t *testing.T) {
	t.Setenv("DATABASE_HOST", "localhost")
	t.Setenv("DATABASE_USER", "postgres")
	t.Setenv("DATABASE_NAME", "villasdb")
	assert.Contains(t, GetDSN(), "host=localhost user=postgres")
	assert.Contains(t, GetDSN(), "dbname=villasdb")
}
