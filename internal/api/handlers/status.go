package handlers

import (
	"github.com/amaumene/moviedeck/internal/controllers"
	"github.com/amaumene/moviedeck/internal/models"
	"github.com/amaumene/moviedeck/internal/services/tmdb"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// StatusHandler handles status requests
type StatusHandler struct {
	gateway          *tmdb.Gateway
	registry         *controllers.Registry
	favoritesBackend string
	logger           *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(gateway *tmdb.Gateway, registry *controllers.Registry, favoritesBackend string, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		gateway:          gateway,
		registry:         registry,
		favoritesBackend: favoritesBackend,
		logger:           logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	Mode             models.Source      `json:"mode"`
	Upstream         *tmdb.HealthStatus `json:"upstream,omitempty"`
	FavoritesBackend string             `json:"favorites_backend"`
	Sessions         int                `json:"sessions"`
}

// Get handles the status endpoint
func (h *StatusHandler) Get(c *fiber.Ctx) error {
	response := StatusResponse{
		Mode:             models.SourceFallback,
		Upstream:         h.gateway.LastHealthCheck(),
		FavoritesBackend: h.favoritesBackend,
		Sessions:         h.registry.Len(),
	}
	if h.gateway.Live() {
		response.Mode = models.SourceLive
	}

	return c.JSON(response)
}
