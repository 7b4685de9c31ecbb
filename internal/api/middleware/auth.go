package middleware

import (
	"strings"

	"github.com/amaumene/moviedeck/internal/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	claimsKey = "claims"
	tokenKey  = "token"
)

// Verifier checks bearer tokens
type Verifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Auth middleware rejects requests without a valid bearer token
func Auth(verifier Verifier, logger *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization header required"})
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, err := verifier.Verify(token)
		if err != nil {
			logger.WithError(err).WithField("path", c.Path()).Debug("Rejected token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		c.Locals(claimsKey, claims)
		c.Locals(tokenKey, token)
		return c.Next()
	}
}

// Claims returns the claims stored by Auth, nil on unauthenticated routes
func Claims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsKey).(*auth.Claims)
	return claims
}

// Token returns the bearer token stored by Auth
func Token(c *fiber.Ctx) string {
	token, _ := c.Locals(tokenKey).(string)
	return token
}
