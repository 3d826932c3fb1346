package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GIN_MODE", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.SubmitDelay)
	assert.Zero(t, cfg.SubmitTimeout)
	assert.Equal(t, 30*time.Minute, cfg.FormSessionTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("SITE_URL", "https://nymbleai.com/")
	t.Setenv("SUBMIT_DELAY", "1500")
	t.Setenv("SUBMIT_TIMEOUT", "10s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example/, ,https://b.example")
	t.Setenv("REVALIDATE_ON_CHANGE", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "https://nymbleai.com", cfg.SiteURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.SubmitDelay)
	assert.Equal(t, 10*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.RevalidateOnChange)
}

func TestLoadConfigRejectsNegativeDelay(t *testing.T) {
	t.Setenv("SUBMIT_DELAY", "-1s")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "SUBMIT_DELAY")
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "soon")
	t.Setenv("COOKIE_SECURE", "maybe")

	assert.Equal(t, 60, getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60))
	assert.True(t, getEnvBool("COOKIE_SECURE", true))
	assert.Equal(t, time.Second, getEnvDuration("UNSET_DURATION_KEY", time.Second))
}
