package handlers

import (
	"github.com/amaumene/moviedeck/internal/services/tmdb"
	"github.com/gofiber/fiber/v2"
)

// ImagesHandler resolves image paths to CDN URLs
type ImagesHandler struct {
	gateway *tmdb.Gateway
}

// NewImagesHandler creates a new images handler
func NewImagesHandler(gateway *tmdb.Gateway) *ImagesHandler {
	return &ImagesHandler{gateway: gateway}
}

// Get handles GET /api/images?path=&size=
func (h *ImagesHandler) Get(c *fiber.Ctx) error {
	var path *string
	if p := c.Query("path"); p != "" {
		path = &p
	}
	return c.JSON(fiber.Map{
		"url": h.gateway.ImageURL(path, c.Query("size", tmdb.DefaultImageSize)),
	})
}
