package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signupflow/internal/signup/config"
	pkgconfig "signupflow/pkg/config"
	"signupflow/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(pkgconfig.EnvFileVariable, "")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.GetAddress())
	assert.Equal(t, "http://localhost:8081", cfg.Accounts.BaseURL)
	assert.Equal(t, "localhost:50061", cfg.Accounts.HealthAddress)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 8, cfg.Submission.MaxConcurrency)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Redis.CatalogTTL)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "stdout", cfg.Tracing.Exporter)
	assert.Equal(t, 35*time.Second, cfg.Shutdown.GetTimeout())
	assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())

	cb := cfg.Resilience.CircuitBreaker()
	assert.Equal(t, 5, cb.ErrorThreshold)
	assert.Equal(t, 10*time.Second, cb.Timeout)

	retry := cfg.Resilience.Retry()
	assert.Equal(t, 3, retry.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, retry.InitialBackoff)
	assert.InDelta(t, 2.0, retry.BackoffFactor, 0.001)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(pkgconfig.EnvFileVariable, "")
	t.Setenv("SIGNUP_REDIS_HOST", "cache")
	t.Setenv("SIGNUP_REDIS_PORT", "6380")
	t.Setenv("SIGNUP_SUBMISSION_MAX_CONCURRENCY", "2")
	t.Setenv("SIGNUP_TRACING_ENABLED", "true")
	t.Setenv("SIGNUP_LOGGER_MODE", "production")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "cache:6380", cfg.Redis.ClientConfig().Address())
	assert.Equal(t, 2, cfg.Submission.MaxConcurrency)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
}
