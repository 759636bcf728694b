package middleware

import (
	"strings"

	"go-stockcontrol-ws/internal/session"
	"go-stockcontrol-ws/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireSession validates the bearer JWT and resolves the active session for
// its username. A valid JWT without a live session (logged out, or replaced by
// a newer login elsewhere) is rejected.
func RequireSession(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		sess, ok := sessions.Get(claims.Username)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired, log in again"})
		}

		c.Locals("username", claims.Username)
		c.Locals("session", sess)
		return c.Next()
	}
}
