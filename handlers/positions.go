package handlers

import (
	"errors"

	"holdings/app"
	"holdings/models"
	"holdings/services"

	"github.com/gofiber/fiber/v2"
)

// GetPositions lists the default user's positions
func GetPositions(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		positions, err := a.Positions.List()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch positions", err)
		}

		return success(c, fiber.Map{"positions": positions})
	}
}

// AddPosition stores a position and returns the refreshed list
func AddPosition(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.NewPosition
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(&req); err != nil {
			return invalid(c, err)
		}

		positions, err := a.Positions.Add(req)
		if errors.Is(err, services.ErrUnknownOwner) {
			return notFound(c, "User not found")
		}
		if err != nil {
			return serverErrorWithDetails(c, "Failed to add position", err)
		}

		return created(c, fiber.Map{"positions": positions})
	}
}

// UpdatePosition applies a sparse update. Omitted fields keep their values
// and an empty body changes nothing.
func UpdatePosition(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badRequest(c, "Invalid position id")
		}

		var req models.PositionUpdate
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return badRequest(c, "Invalid request body")
			}
		}
		if err := a.Validator.Validate(&req); err != nil {
			return invalid(c, err)
		}

		position, err := a.Positions.Update(id, req)
		if errors.Is(err, services.ErrPositionNotFound) {
			return notFound(c, "Position not found")
		}
		if err != nil {
			return serverErrorWithDetails(c, "Failed to update position", err)
		}

		return success(c, fiber.Map{"position": position})
	}
}

// DeletePosition removes a position. Unknown ids are not an error.
func DeletePosition(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badRequest(c, "Invalid position id")
		}

		positions, err := a.Positions.Delete(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to delete position", err)
		}

		return success(c, fiber.Map{"positions": positions})
	}
}
