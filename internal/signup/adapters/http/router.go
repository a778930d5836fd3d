package http

import (
	"github.com/gofiber/fiber/v3"

	"signupflow/internal/signup/ports/api"
	"signupflow/pkg/middleware"
)

// SetupRouter настраивает маршрутизацию мастера регистрации.
func SetupRouter(app *fiber.App, wizard api.WizardService, readiness Checker) {
	h := NewHandler(wizard)

	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/health/live", Live)
	app.Get("/health/ready", Ready(readiness))

	sessions := app.Group("/api/v1/signup/sessions")
	sessions.Post("/", h.Start)
	sessions.Get("/:session_id", h.Get)
	sessions.Delete("/:session_id", h.Delete)
	sessions.Patch("/:session_id/fields", h.UpdateFields)
	sessions.Post("/:session_id/next", h.Next)
	sessions.Post("/:session_id/back", h.Back)
	sessions.Post("/:session_id/tags/:tag_id", h.ToggleTag)

	app.Use(middleware.NotFound)
}
