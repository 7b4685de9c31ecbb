package handlers

import (
	"errors"

	"github.com/amaumene/moviedeck/internal/api/middleware"
	"github.com/amaumene/moviedeck/internal/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles sign in, sign up and sign out
type AuthHandler struct {
	service *auth.Service
	logger  *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *auth.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid payload")
	}

	session, err := h.service.Login(req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(session)
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req auth.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid payload")
	}

	session, err := h.service.Register(req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.service.Logout(middleware.Token(c)); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me handles GET /api/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	return c.JSON(auth.User{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
	})
}

func (h *AuthHandler) fail(c *fiber.Ctx, err error) error {
	var verr *auth.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  verr.Error(),
			"fields": verr.Fields,
		})
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return errorResponse(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrEmailTaken):
		return errorResponse(c, fiber.StatusConflict, err.Error())
	default:
		h.logger.WithError(err).Error("Auth request failed")
		return errorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
