// Package config предоставляет загрузку конфигурации сервисов из переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"signupflow/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"
	msgEnvFileMissing          = "env file not found, reading process environment"

	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// EnvFileVariable - переменная окружения с путем к .env файлу.
const EnvFileVariable = "SIGNUPFLOW_ENV_FILE"

// Load читает конфигурацию типа T. Если задан SIGNUPFLOW_ENV_FILE и файл существует,
// значения берутся из него (переменные окружения имеют приоритет), иначе из окружения.
func Load[T any](ctx context.Context, serviceName string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	envPath := os.Getenv(EnvFileVariable)
	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, envPath))

	var cfg T
	var err error

	if envPath != "" {
		if _, statErr := os.Stat(envPath); statErr == nil {
			err = cleanenv.ReadConfig(envPath, &cfg)
		} else if errors.Is(statErr, os.ErrNotExist) {
			log.Warn(ctx, msgEnvFileMissing, zap.String(attrPath, envPath))
			err = cleanenv.ReadEnv(&cfg)
		} else {
			err = statErr
		}
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}

	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}
