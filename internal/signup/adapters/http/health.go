package http

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"signupflow/pkg/logger"
)

const (
	statusOK       = "ok"
	statusNotReady = "not ready"

	LogNotReady = "signup service not ready"
)

// Checker проверяет зависимость, без которой отправка невозможна.
type Checker interface {
	Check(ctx context.Context) error
}

// Live отвечает, пока процесс обслуживает запросы.
func Live(ctx fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": statusOK})
}

// Ready возвращает обработчик готовности. Без checker сервис всегда готов.
func Ready(checker Checker) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		if checker == nil {
			return ctx.JSON(fiber.Map{"status": statusOK})
		}

		requestCtx := ctx.Context()
		if err := checker.Check(requestCtx); err != nil {
			logger.Log(requestCtx).Warn(requestCtx, LogNotReady, zap.Error(err))
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": statusNotReady})
		}
		return ctx.JSON(fiber.Map{"status": statusOK})
	}
}
