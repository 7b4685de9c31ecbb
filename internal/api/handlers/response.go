package handlers

import (
	"github.com/amaumene/moviedeck/internal/api/middleware"
	"github.com/amaumene/moviedeck/internal/controllers"
	"github.com/gofiber/fiber/v2"
)

func errorResponse(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// movieID reads the :id route parameter, which must be a positive integer
func movieID(c *fiber.Ctx) (int, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// session returns the view session of the signed in user
func session(c *fiber.Ctx, registry *controllers.Registry) *controllers.Session {
	return registry.Session(middleware.Claims(c).Subject)
}
