package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_OriginAndProxyDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/crm")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("TRUSTED_PROXIES", "")

	t.Setenv("APP_ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{AnyOrigin}, cfg.CORSAllowOrigin)
	assert.Empty(t, cfg.TrustedProxies)

	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "production-secret-value")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.CORSAllowOrigin)
}

func TestLoad_Lists(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/crm")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "production-secret-value")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSAllowOrigin)
	assert.Equal(t, []string{"10.0.0.1"}, cfg.TrustedProxies)
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	assert.Error(t, err)
}
