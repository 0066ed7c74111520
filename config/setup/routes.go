package setup

import (
	"holdings/app"
	"holdings/handlers"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	fiberApp.Get("/health", handlers.Health)

	api := fiberApp.Group("/api")

	api.Get("/positions", handlers.GetPositions(application))
	api.Post("/positions", handlers.AddPosition(application))
	api.Patch("/positions/:id", handlers.UpdatePosition(application))
	api.Delete("/positions/:id", handlers.DeletePosition(application))

	api.Post("/users", handlers.CreateUser(application))
	api.Get("/users/by-username/:username", handlers.GetUserByUsername(application))
	api.Get("/users/:id", handlers.GetUser(application))

	api.Get("/todos", handlers.GetTodos(application))
}
