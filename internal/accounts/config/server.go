package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"ACCOUNTS_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"ACCOUNTS_HTTP_PORT" env-default:"8081"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"ACCOUNTS_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"ACCOUNTS_HTTP_WRITE_TIMEOUT" env-default:"10s"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GRPCConfig конфигурация gRPC сервера (health-check и reflection).
type GRPCConfig struct {
	Host string `yaml:"host" env:"ACCOUNTS_GRPC_HOST" env-default:"0.0.0.0"`
	Port int    `yaml:"port" env:"ACCOUNTS_GRPC_PORT" env-default:"50061"`

	HealthInterval time.Duration `yaml:"health_interval" env:"ACCOUNTS_GRPC_HEALTH_INTERVAL" env-default:"5s"`
}

// GetAddress возвращает адрес для gRPC сервера.
func (g *GRPCConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", g.Host, g.Port)
}

// SecurityConfig содержит параметры хэширования паролей.
type SecurityConfig struct {
	BCryptCost int `yaml:"bcrypt_cost" env:"ACCOUNTS_BCRYPT_COST" env-default:"10"`
}
