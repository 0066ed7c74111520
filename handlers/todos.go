package handlers

import (
	"holdings/app"

	"github.com/gofiber/fiber/v2"
)

// GetTodos returns the seeded demo rows
func GetTodos(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		todos, err := a.Todos.ListTodos()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch todos", err)
		}

		return success(c, fiber.Map{"todos": todos})
	}
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
