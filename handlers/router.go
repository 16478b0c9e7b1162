package handlers

import (
	"maycoin-backend/middleware"
	"maycoin-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// AppDeps is everything NewApp wires into the Fiber app.
type AppDeps struct {
	PlayerService *services.PlayerService
	AdminService  *services.AdminService
	AdminPassword string
	Metrics       *middleware.Metrics
}

func NewApp(deps AppDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "maycoin-backend",
		BodyLimit:    64 * 1024,
		ErrorHandler: jsonErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} ${latency} ${method} ${path}\n",
	}))
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
	}
	// Preflights are answered by each route's handler so they get 200 rather than 204.
	app.Use(middleware.AllowAnyOrigin())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	SetupPlayerRoutes(app, deps.PlayerService)
	SetupAdminRoutes(app, deps.AdminService, deps.AdminPassword)

	return app
}

// jsonErrorHandler keeps framework errors (404 route, panics, body limit) in the same JSON shape.
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if fe, ok := err.(*fiber.Error); ok {
		code = fe.Code
	}
	c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
