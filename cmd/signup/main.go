// Package main реализует точку входа сервиса мастера регистрации.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"signupflow/internal/signup/adapters/accounts"
	"signupflow/internal/signup/adapters/cache"
	"signupflow/internal/signup/adapters/health"
	signuphttp "signupflow/internal/signup/adapters/http"
	"signupflow/internal/signup/adapters/sessions"
	"signupflow/internal/signup/app/services"
	"signupflow/internal/signup/app/submission"
	"signupflow/internal/signup/app/wizard"
	"signupflow/internal/signup/config"
	portservices "signupflow/internal/signup/ports/services"
	"signupflow/internal/signup/resilience"
	"signupflow/internal/signup/tracing"
	"signupflow/pkg/db/redis"
	"signupflow/pkg/logger"
	"signupflow/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "SIGNUP_LOGGER_MODE"
	EnvLoggerLevel = "SIGNUP_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitTracing          = "failed to initialize tracing"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrInitHealthClient     = "failed to initialize accounts health client"
	ErrRedisUnavailable     = "redis unavailable, tag catalog cache disabled"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "signup service started"
	LogServiceShutdownDone = "signup service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogWaitingSubmissions  = "waiting for running submissions"
	LogClosingRedis        = "closing redis connection"
	LogClosingHealth       = "closing accounts health connection"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.ContextWithRequestID(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		tracer, err := tracing.NewProvider(ctx, cfg.Tracing)
		if err != nil {
			log.Error(ctx, ErrInitTracing, zap.Error(err))
			exitCode = 1
			return
		}

		accountsClient := accounts.NewClient(cfg.Accounts.BaseURL, cfg.Accounts.Timeout,
			resilience.NewServiceResilience("accounts", cfg.Resilience.CircuitBreaker(), resilience.NoRetry()),
			resilience.NewServiceResilience("tags", cfg.Resilience.CircuitBreaker(), cfg.Resilience.Retry()),
		)

		var catalog portservices.TagCatalogService = accountsClient
		var redisClient *redis.Client
		if cfg.Redis.Enabled {
			redisClient, err = redis.NewClient(ctx, cfg.Redis.ClientConfig())
			if err != nil {
				log.Warn(ctx, ErrRedisUnavailable, zap.Error(err))
			} else {
				catalog = cache.NewCatalogCache(accountsClient, redisClient, cfg.Redis.CatalogTTL)
			}
		}

		orchestrator := submission.NewOrchestrator(accountsClient, accountsClient,
			submission.WithMaxConcurrency(cfg.Submission.MaxConcurrency),
			submission.WithTracer(tracer.Tracer()),
		)
		sessionService := services.NewSessionService(
			sessions.NewMemoryStore(cfg.Session.TTL, cfg.Session.CleanupInterval),
			wizard.NewController(catalog, orchestrator),
			services.WithSubmissionTimeout(cfg.Submission.Timeout),
		)

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		healthClient, err := health.NewClient(cfg.Accounts.HealthAddress, cfg.Accounts.HealthService, cfg.Accounts.Timeout)
		if err != nil {
			log.Error(ctx, ErrInitHealthClient, zap.Error(err))
			exitCode = 1
			return
		}
		defer func() {
			log.Info(ctx, LogClosingHealth)
			if err := healthClient.Close(); err != nil {
				log.Warn(ctx, LogClosingHealth, zap.Error(err))
			}
		}()

		httpApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})
		signuphttp.SetupRouter(httpApp, sessionService, healthClient)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := httpApp.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return httpApp.ShutdownWithContext(ctx)
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogWaitingSubmissions)
				if err := sessionService.Wait(ctx); err != nil {
					return err
				}
				return tracer.Shutdown(ctx)
			},
		)

		if redisClient != nil {
			log.Info(ctx, LogClosingRedis)
			if err := redisClient.Close(); err != nil {
				log.Warn(ctx, LogClosingRedis, zap.Error(err))
			}
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
