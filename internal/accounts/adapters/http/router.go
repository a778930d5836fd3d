package http

import (
	"github.com/gofiber/fiber/v3"

	"signupflow/internal/accounts/ports/api"
	"signupflow/pkg/middleware"
)

// SetupRouter настраивает маршрутизацию REST API учетных записей.
func SetupRouter(app *fiber.App, accounts api.AccountUseCase, tags api.TagUseCase) {
	h := NewHandler(accounts, tags)

	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	apiV1 := app.Group("/api/v1")

	users := apiV1.Group("/users")
	users.Post("/signup", h.Signup)
	users.Get("/:user_id/tags", h.ListUserTags)
	users.Post("/:user_id/tags/:tag_id", h.AssignTag)
	users.Delete("/:user_id/tags/:tag_id", h.UnassignTag)

	tagRoutes := apiV1.Group("/tags")
	tagRoutes.Get("/", h.ListTags)
	tagRoutes.Post("/", h.CreateTag)
	tagRoutes.Get("/:tag_id", h.GetTag)
	tagRoutes.Put("/:tag_id", h.UpdateTag)
	tagRoutes.Delete("/:tag_id", h.DeleteTag)

	app.Use(middleware.NotFound)
}
