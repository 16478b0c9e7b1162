// handlers/player_routes.go
package handlers

import (
	"log"

	"maycoin-backend/services"

	"github.com/gofiber/fiber/v2"
)

type saveProgressRequest struct {
	PlayerID      string   `json:"playerId"`
	Username      string   `json:"username"`
	Coins         *float64 `json:"coins"`
	TotalEarned   *float64 `json:"totalEarned"`
	TotalClicks   *float64 `json:"totalClicks"`
	ClickPower    *float64 `json:"clickPower"`
	AutoClickRate *float64 `json:"autoClickRate"`
	HasPremium    *bool    `json:"hasPremium"`
}

func (r saveProgressRequest) toInput() (services.SaveProgressInput, error) {
	in := services.NewSaveProgressInput(r.PlayerID, r.Username)
	for _, f := range []struct {
		name string
		src  *float64
		dst  *int64
	}{
		{"coins", r.Coins, &in.Coins},
		{"totalEarned", r.TotalEarned, &in.TotalEarned},
		{"totalClicks", r.TotalClicks, &in.TotalClicks},
		{"clickPower", r.ClickPower, &in.ClickPower},
		{"autoClickRate", r.AutoClickRate, &in.AutoClickRate},
	} {
		v, err := intOr(f.name, f.src, *f.dst)
		if err != nil {
			return in, err
		}
		*f.dst = v
	}
	if r.HasPremium != nil {
		in.HasPremium = *r.HasPremium
	}
	return in, nil
}

func SetupPlayerRoutes(app *fiber.App, playerService *services.PlayerService) {
	app.All("/player", PlayerHandler(playerService))
}

// PlayerHandler serves progress load (GET) and save (POST/PUT) on a single path.
func PlayerHandler(playerService *services.PlayerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch ParseOperation(c.Method()) {
		case OpOptions:
			return preflight(c, "GET, POST, PUT, OPTIONS", "Content-Type")

		case OpGet:
			progress, err := playerService.LoadProgress(c.UserContext(), c.Query("playerId"))
			if err != nil {
				return writeError(c, err)
			}
			return c.JSON(progress)

		case OpPost, OpPut:
			var req saveProgressRequest
			if err := decodeBody(c, &req); err != nil {
				return writeError(c, err)
			}
			in, err := req.toInput()
			if err != nil {
				return writeError(c, err)
			}
			if err := playerService.SaveProgress(c.UserContext(), in); err != nil {
				return writeError(c, err)
			}
			log.Printf("💾 [PLAYER] progress saved for %s", req.PlayerID)
			return c.JSON(fiber.Map{
				"success": true,
				"message": "Player data saved",
			})

		default:
			return methodNotAllowed(c)
		}
	}
}
