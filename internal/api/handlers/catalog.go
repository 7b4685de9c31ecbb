package handlers

import (
	"errors"

	"github.com/amaumene/moviedeck/internal/controllers"
	"github.com/amaumene/moviedeck/internal/services/tmdb"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// CatalogHandler exposes the listing view of the signed in user
type CatalogHandler struct {
	registry *controllers.Registry
	logger   *logrus.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(registry *controllers.Registry, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		registry: registry,
		logger:   logger,
	}
}

type pageRequest struct {
	Page int `json:"page"`
}

type searchRequest struct {
	Query string `json:"query"`
}

// View handles GET /api/catalog. An idle listing is loaded on first view.
func (h *CatalogHandler) View(c *fiber.Ctx) error {
	list := session(c, h.registry).List
	view := list.View()
	if view.State != controllers.StateIdle {
		return c.JSON(view)
	}

	view, err := list.SetPage(c.UserContext(), view.Page)
	return h.respond(c, view, err)
}

// SetPage handles POST /api/catalog/page
func (h *CatalogHandler) SetPage(c *fiber.Ctx) error {
	var req pageRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid payload")
	}

	view, err := session(c, h.registry).List.SetPage(c.UserContext(), req.Page)
	return h.respond(c, view, err)
}

// Search handles POST /api/catalog/search. A blank query goes back to the
// popular listing.
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid payload")
	}

	view, err := session(c, h.registry).List.Submit(c.UserContext(), req.Query)
	return h.respond(c, view, err)
}

// ToggleFavorite handles POST /api/catalog/favorites/:id
func (h *CatalogHandler) ToggleFavorite(c *fiber.Ctx) error {
	id, ok := movieID(c)
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid movie id")
	}
	return c.JSON(session(c, h.registry).List.ToggleFavorite(id))
}

func (h *CatalogHandler) respond(c *fiber.Ctx, view controllers.ListView, err error) error {
	switch {
	case err == nil, errors.Is(err, controllers.ErrSuperseded):
		return c.JSON(view)
	case errors.Is(err, tmdb.ErrInvalidPage):
		return c.Status(fiber.StatusBadRequest).JSON(view)
	default:
		h.logger.WithError(err).Error("Failed to load listing")
		return c.Status(fiber.StatusInternalServerError).JSON(view)
	}
}
