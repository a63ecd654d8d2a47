package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"API_KEY", "ALPHA_VANTAGE_API_KEY", "SESSION_SECRET", "JWT_SECRET",
		"STARTING_CASH", "QUOTE_CACHE_TTL", "PORT", "DB_HOST", "SESSION_TTL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "demo")
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := fromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "demo", cfg.Quote.APIKey)
	assert.Equal(t, time.Minute, cfg.Quote.CacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.StartingCash.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestLoad_MissingQuoteKeyIsFatal(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", "s3cret")

	_, err := fromViper(newViper())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestLoad_MissingSessionSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "demo")

	_, err := fromViper(newViper())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALPHA_VANTAGE_API_KEY", "av-key")
	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("STARTING_CASH", "2500.50")
	t.Setenv("QUOTE_CACHE_TTL", "0s")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db")

	cfg, err := fromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, "av-key", cfg.Quote.APIKey)
	assert.Equal(t, "jwt", cfg.Session.Secret)
	assert.True(t, cfg.StartingCash.Equal(decimal.RequireFromString("2500.50")))
	assert.Equal(t, time.Duration(0), cfg.Quote.CacheTTL)
	assert.Equal(t, "9090", cfg.Port)
	assert.Contains(t, cfg.Database.DSN(), "host=db")
}

func TestLoad_InvalidStartingCash(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "demo")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("STARTING_CASH", "lots")

	_, err := fromViper(newViper())
	assert.Error(t, err)
}
