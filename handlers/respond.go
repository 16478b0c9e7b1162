package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"math"

	"maycoin-backend/services"

	"github.com/gofiber/fiber/v2"
)

// writeError maps service errors onto the status codes of the public contract.
func writeError(c *fiber.Ctx, err error) error {
	var (
		blocked    *services.BlockedError
		validation *services.ValidationError
		storeErr   *services.StoreError
	)

	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Msg})
	case errors.As(err, &blocked):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "Account blocked",
			"blocked": true,
			"reason":  blocked.Reason,
		})
	case errors.Is(err, services.ErrAdminAuth):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrPlayerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Player not found"})
	case errors.As(err, &storeErr):
		log.Printf("❌ [STORE] %s failed: %v", storeErr.Op, storeErr.Err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": storeErr.Error()})
	default:
		log.Printf("❌ [HTTP] unexpected error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func methodNotAllowed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{"error": "Method not allowed"})
}

// preflight answers a bare OPTIONS with 200 and an empty body.
func preflight(c *fiber.Ctx, methods, headers string) error {
	c.Set(fiber.HeaderAccessControlAllowMethods, methods)
	c.Set(fiber.HeaderAccessControlAllowHeaders, headers)
	c.Set(fiber.HeaderAccessControlMaxAge, "86400")
	return c.Status(fiber.StatusOK).Send(nil)
}

// decodeBody unmarshals a JSON body; an empty body leaves out untouched.
func decodeBody(c *fiber.Ctx, out any) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &services.ValidationError{Msg: "invalid JSON body"}
	}
	return nil
}

// intOr rounds a JSON number to the nearest integer, the way an integer column coerces it.
// Values outside the int64 range are rejected rather than converted.
func intOr(field string, v *float64, fallback int64) (int64, error) {
	if v == nil {
		return fallback, nil
	}
	r := math.Round(*v)
	if math.IsNaN(r) || r >= math.MaxInt64 || r < math.MinInt64 {
		return 0, &services.ValidationError{Msg: field + " is out of range"}
	}
	return int64(r), nil
}
