// middleware/admin_auth.go
package middleware

import (
	"crypto/subtle"
	"log"

	"maycoin-backend/services"

	"github.com/gofiber/fiber/v2"
)

// AdminPasswordHeader carries the shared admin secret.
const AdminPasswordHeader = "X-Admin-Password"

// AdminSecretMiddleware compares X-Admin-Password with the configured secret before any
// admin handler runs. OPTIONS passes through so browsers can preflight. An empty configured
// secret rejects everything.
func AdminSecretMiddleware(expected string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		provided := c.Get(AdminPasswordHeader)
		if provided == "" {
			log.Printf("🚫 [ADMIN_AUTH] Missing %s header for %s %s", AdminPasswordHeader, c.Method(), c.Path())
			return reject(c)
		}
		if expected == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			log.Printf("❌ [ADMIN_AUTH] Invalid admin password for %s %s from %s", c.Method(), c.Path(), c.IP())
			return reject(c)
		}

		return c.Next()
	}
}

func reject(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error": services.ErrAdminAuth.Error(),
	})
}
