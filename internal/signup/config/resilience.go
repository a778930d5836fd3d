package config

import (
	"time"

	"signupflow/internal/signup/resilience"
)

// ResilienceConfig - Circuit Breaker и повторы запросов к сервису учетных записей.
type ResilienceConfig struct {
	ErrorThreshold   int           `yaml:"error_threshold" env:"SIGNUP_CB_ERROR_THRESHOLD" env-default:"5"`
	OpenTimeout      time.Duration `yaml:"open_timeout" env:"SIGNUP_CB_OPEN_TIMEOUT" env-default:"10s"`
	SuccessThreshold int           `yaml:"success_threshold" env:"SIGNUP_CB_SUCCESS_THRESHOLD" env-default:"2"`

	MaxAttempts    int           `yaml:"max_attempts" env:"SIGNUP_RETRY_MAX_ATTEMPTS" env-default:"3"`
	InitialBackoff time.Duration `yaml:"initial_backoff" env:"SIGNUP_RETRY_INITIAL_BACKOFF" env-default:"100ms"`
	MaxBackoff     time.Duration `yaml:"max_backoff" env:"SIGNUP_RETRY_MAX_BACKOFF" env-default:"1s"`
	BackoffFactor  float64       `yaml:"backoff_factor" env:"SIGNUP_RETRY_BACKOFF_FACTOR" env-default:"2"`
}

// CircuitBreaker возвращает настройки Circuit Breaker.
func (r *ResilienceConfig) CircuitBreaker() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		ErrorThreshold:   r.ErrorThreshold,
		Timeout:          r.OpenTimeout,
		SuccessThreshold: r.SuccessThreshold,
	}
}

// Retry возвращает настройки повторов.
func (r *ResilienceConfig) Retry() resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxAttempts:    r.MaxAttempts,
		InitialBackoff: r.InitialBackoff,
		MaxBackoff:     r.MaxBackoff,
		BackoffFactor:  r.BackoffFactor,
	}
}
