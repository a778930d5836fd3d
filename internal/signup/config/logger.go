package config

import (
	"time"

	"signupflow/pkg/logger"
)

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"SIGNUP_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"SIGNUP_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment получает строку режима в logger.Environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}

// ShutdownConfig содержит настройки для graceful shutdown.
// Timeout должен покрывать SubmissionConfig.Timeout, иначе незавершенные отправки потеряются.
type ShutdownConfig struct {
	Timeout int `yaml:"timeout" env:"SIGNUP_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"35"`
}

// GetTimeout возвращает timeout как time.Duration.
func (s *ShutdownConfig) GetTimeout() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}
