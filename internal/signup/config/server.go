package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"SIGNUP_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"SIGNUP_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SIGNUP_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SIGNUP_HTTP_WRITE_TIMEOUT" env-default:"10s"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AccountsConfig - подключение к сервису учетных записей.
type AccountsConfig struct {
	BaseURL string        `yaml:"base_url" env:"SIGNUP_ACCOUNTS_URL" env-default:"http://localhost:8081"`
	Timeout time.Duration `yaml:"timeout" env:"SIGNUP_ACCOUNTS_TIMEOUT" env-default:"5s"`

	// HealthAddress - адрес gRPC health-check сервиса учетных записей.
	HealthAddress string `yaml:"health_address" env:"SIGNUP_ACCOUNTS_HEALTH_ADDR" env-default:"localhost:50061"`
	HealthService string `yaml:"health_service" env:"SIGNUP_ACCOUNTS_HEALTH_SERVICE" env-default:"accounts"`
}

// SessionConfig - время жизни сессий мастера.
type SessionConfig struct {
	TTL             time.Duration `yaml:"ttl" env:"SIGNUP_SESSION_TTL" env-default:"30m"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"SIGNUP_SESSION_CLEANUP_INTERVAL" env-default:"5m"`
}

// SubmissionConfig - параметры отправки формы.
type SubmissionConfig struct {
	MaxConcurrency int           `yaml:"max_concurrency" env:"SIGNUP_SUBMISSION_MAX_CONCURRENCY" env-default:"8"`
	Timeout        time.Duration `yaml:"timeout" env:"SIGNUP_SUBMISSION_TIMEOUT" env-default:"30s"`
}
