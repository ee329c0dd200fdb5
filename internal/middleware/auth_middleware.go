package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/arjunvn/shopstack/internal/auth"
)

// PrincipalKey is the locals key the authenticated principal is stored under.
const PrincipalKey = "principal"

// Auth validates the bearer token through the configured verifier and stores
// the principal for downstream handlers.
func Auth(verifier auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header || tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token format"})
		}

		principal, err := verifier.Authenticate(c.Context(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		c.Locals(PrincipalKey, principal)
		return c.Next()
	}
}

// RequireRole allows only principals whose role exactly matches one of the
// given roles.
func RequireRole(roles ...auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := c.Locals(PrincipalKey).(auth.Principal)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
		}
		for _, role := range roles {
			if auth.Authorize(principal, role) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied: insufficient permissions"})
	}
}
