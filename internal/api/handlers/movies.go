package handlers

import (
	"errors"
	"strings"

	"github.com/amaumene/moviedeck/internal/controllers"
	"github.com/amaumene/moviedeck/internal/services/tmdb"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const defaultSuggestions = 5

// MoviesHandler serves raw gateway results and the detail view
type MoviesHandler struct {
	gateway  *tmdb.Gateway
	registry *controllers.Registry
	logger   *logrus.Logger
}

// NewMoviesHandler creates a new movies handler
func NewMoviesHandler(gateway *tmdb.Gateway, registry *controllers.Registry, logger *logrus.Logger) *MoviesHandler {
	return &MoviesHandler{
		gateway:  gateway,
		registry: registry,
		logger:   logger,
	}
}

// Popular handles GET /api/movies/popular?page=
func (h *MoviesHandler) Popular(c *fiber.Ctx) error {
	result, err := h.gateway.ListPopular(c.UserContext(), c.QueryInt("page", 1))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(result)
}

// Search handles GET /api/movies/search?query=&page=
func (h *MoviesHandler) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		return errorResponse(c, fiber.StatusBadRequest, "query is required")
	}

	result, err := h.gateway.Search(c.UserContext(), query, c.QueryInt("page", 1))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(result)
}

// Suggest handles GET /api/movies/suggest?query=
func (h *MoviesHandler) Suggest(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultSuggestions)
	return c.JSON(fiber.Map{
		"suggestions": h.gateway.Suggest(c.Query("query"), limit),
	})
}

// Show handles GET /api/movies/:id. Every failure leaves the view in its
// not-found state; 404 means the movie does not exist, 502 means the live
// API failed and no local record could stand in.
func (h *MoviesHandler) Show(c *fiber.Ctx) error {
	id, ok := movieID(c)
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid movie id")
	}

	view, err := session(c, h.registry).Detail.Open(c.UserContext(), id)
	switch {
	case err == nil, errors.Is(err, controllers.ErrSuperseded):
		return c.JSON(view)
	case errors.Is(err, tmdb.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(view)
	default:
		h.logger.WithError(err).WithField("movie_id", id).Warn("Details unavailable")
		return c.Status(fiber.StatusBadGateway).JSON(view)
	}
}

// ToggleFavorite handles POST /api/movies/:id/favorite. The movie must be
// the one currently open in the detail view.
func (h *MoviesHandler) ToggleFavorite(c *fiber.Ctx) error {
	id, ok := movieID(c)
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid movie id")
	}

	detail := session(c, h.registry).Detail
	if current := detail.View(); current.State != controllers.StateReady || current.ID != id {
		return errorResponse(c, fiber.StatusConflict, "Movie is not open")
	}

	view, err := detail.ToggleFavorite()
	if err != nil {
		return errorResponse(c, fiber.StatusConflict, err.Error())
	}
	return c.JSON(view)
}
