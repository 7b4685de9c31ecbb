package handlers

import (
	"errors"

	"github.com/amaumene/moviedeck/internal/controllers"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// FavoritesHandler serves the favorites page of the signed in user
type FavoritesHandler struct {
	registry *controllers.Registry
	logger   *logrus.Logger
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(registry *controllers.Registry, logger *logrus.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		registry: registry,
		logger:   logger,
	}
}

// List handles GET /api/favorites
func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	view, err := session(c, h.registry).Favorites.Load(c.UserContext())
	if err != nil && !errors.Is(err, controllers.ErrSuperseded) {
		h.logger.WithError(err).Warn("Failed to load favorites page")
		return c.Status(fiber.StatusBadGateway).JSON(view)
	}
	return c.JSON(view)
}

// Remove handles DELETE /api/favorites/:id
func (h *FavoritesHandler) Remove(c *fiber.Ctx) error {
	id, ok := movieID(c)
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid movie id")
	}
	return c.JSON(session(c, h.registry).Favorites.Remove(id))
}
