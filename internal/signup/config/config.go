// Package config содержит конфигурацию сервиса мастера регистрации.
package config

import (
	"context"

	"go.uber.org/zap"

	"signupflow/internal/signup/tracing"
	pkgconfig "signupflow/pkg/config"
	"signupflow/pkg/logger"
)

// ServiceName - имя сервиса в логах и трассировке.
const ServiceName = "signup"

// Константы сообщений для конфигурации.
const (
	LogConfigLoaded = "signup configuration loaded"
)

// Config представляет полную конфигурацию сервиса мастера.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Accounts   AccountsConfig   `yaml:"accounts"`
	Redis      RedisConfig      `yaml:"redis"`
	Session    SessionConfig    `yaml:"session"`
	Submission SubmissionConfig `yaml:"submission"`
	Resilience ResilienceConfig `yaml:"resilience"`
	Tracing    tracing.Config   `yaml:"tracing"`
	Logging    LoggingConfig    `yaml:"logging"`
	Shutdown   ShutdownConfig   `yaml:"shutdown"`
}

// Load загружает конфигурацию из переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName)
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("accounts_url", cfg.Accounts.BaseURL),
		zap.Bool("catalog_cache", cfg.Redis.Enabled),
		zap.Duration("session_ttl", cfg.Session.TTL),
		zap.Int("max_concurrency", cfg.Submission.MaxConcurrency),
		zap.Bool("tracing", cfg.Tracing.Enabled),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}
