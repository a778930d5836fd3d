package config

import (
	"time"

	"signupflow/pkg/db/redis"
)

// RedisConfig - кэш каталога тегов. При Enabled=false каталог читается напрямую.
type RedisConfig struct {
	Enabled  bool          `yaml:"enabled" env:"SIGNUP_REDIS_ENABLED" env-default:"true"`
	Host     string        `yaml:"host" env:"SIGNUP_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"SIGNUP_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"SIGNUP_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"SIGNUP_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"SIGNUP_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"SIGNUP_REDIS_TIMEOUT" env-default:"3s"`
	// CatalogTTL - время жизни кэша каталога.
	CatalogTTL time.Duration `yaml:"catalog_ttl" env:"SIGNUP_CATALOG_CACHE_TTL" env-default:"30s"`
}

// ClientConfig возвращает настройки клиента Redis.
func (r *RedisConfig) ClientConfig() *redis.Config {
	cfg := redis.DefaultConfig()
	cfg.Host = r.Host
	cfg.Port = r.Port
	cfg.Password = r.Password
	cfg.DB = r.DB
	cfg.PoolSize = r.PoolSize
	cfg.DialTimeout = r.Timeout
	cfg.ReadTimeout = r.Timeout
	cfg.WriteTimeout = r.Timeout
	return cfg
}
