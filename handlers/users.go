package handlers

import (
	"errors"

	"holdings/app"
	"holdings/models"
	"holdings/services"

	"github.com/gofiber/fiber/v2"
)

// CreateUser registers a user
func CreateUser(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateUserRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return invalid(c, err)
		}

		user, err := a.Users.Create(req.Username, req.Email)
		if errors.Is(err, services.ErrUserExists) {
			return conflict(c, "Username or email already taken")
		}
		if err != nil {
			return serverErrorWithDetails(c, "Failed to create user", err)
		}

		return created(c, fiber.Map{"user": user})
	}
}

func GetUser(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badRequest(c, "Invalid user id")
		}

		return respondUser(c, func() (*models.User, error) { return a.Users.Get(id) })
	}
}

func GetUserByUsername(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := c.Params("username")
		if username == "" {
			return badRequest(c, "username is required")
		}

		return respondUser(c, func() (*models.User, error) { return a.Users.GetByUsername(username) })
	}
}

func respondUser(c *fiber.Ctx, lookup func() (*models.User, error)) error {
	user, err := lookup()
	if errors.Is(err, services.ErrUserNotFound) {
		return notFound(c, "User not found")
	}
	if err != nil {
		return serverErrorWithDetails(c, "Failed to fetch user", err)
	}

	return success(c, fiber.Map{"user": user})
}
