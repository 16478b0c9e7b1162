// handlers/admin_routes.go
package handlers

import (
	"maycoin-backend/middleware"
	"maycoin-backend/services"

	"github.com/gofiber/fiber/v2"
)

type adjustCoinsRequest struct {
	PlayerID    string   `json:"playerId"`
	CoinsChange *float64 `json:"coinsChange"`
}

type blockStateRequest struct {
	PlayerID string  `json:"playerId"`
	Action   string  `json:"action"`
	Reason   *string `json:"reason"`
}

// SetupAdminRoutes mounts the moderation surface behind the shared admin secret.
func SetupAdminRoutes(app *fiber.App, adminService *services.AdminService, adminPassword string) {
	app.All("/admin", middleware.AdminSecretMiddleware(adminPassword), AdminHandler(adminService))
}

// AdminHandler expects the secret check to have already run.
func AdminHandler(adminService *services.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		switch ParseOperation(c.Method()) {
		case OpOptions:
			return preflight(c, "GET, POST, PUT, DELETE, OPTIONS", "Content-Type, "+middleware.AdminPasswordHeader)

		case OpGet:
			players, err := adminService.ListPlayers(ctx)
			if err != nil {
				return writeError(c, err)
			}
			return c.JSON(fiber.Map{"players": players})

		case OpPost:
			var req adjustCoinsRequest
			if err := decodeBody(c, &req); err != nil {
				return writeError(c, err)
			}
			change, err := intOr("coinsChange", req.CoinsChange, 0)
			if err != nil {
				return writeError(c, err)
			}
			newCoins, err := adminService.AdjustCoins(ctx, req.PlayerID, change)
			if err != nil {
				return writeError(c, err)
			}
			return c.JSON(fiber.Map{
				"success":  true,
				"newCoins": newCoins,
			})

		case OpPut:
			var req blockStateRequest
			if err := decodeBody(c, &req); err != nil {
				return writeError(c, err)
			}
			action := services.ParseBlockAction(req.Action)
			if err := adminService.SetBlockState(ctx, req.PlayerID, action, req.Reason); err != nil {
				return writeError(c, err)
			}
			return c.JSON(fiber.Map{
				"success": true,
				"action":  action.Past(),
			})

		case OpDelete:
			if err := adminService.DeletePlayer(ctx, c.Query("playerId")); err != nil {
				return writeError(c, err)
			}
			return c.JSON(fiber.Map{"success": true})

		default:
			return methodNotAllowed(c)
		}
	}
}
