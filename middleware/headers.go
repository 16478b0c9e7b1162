package middleware

import "github.com/gofiber/fiber/v2"

// AllowAnyOrigin stamps the permissive cross-origin header on every response, preflights included.
func AllowAnyOrigin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		return c.Next()
	}
}
