package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/az-solve/shop-support/internal/api/http/handlers"
	"github.com/az-solve/shop-support/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/admin/login", cfg.Auth.AdminLogin)

	tickets := app.Group("/api/supportticket")
	tickets.Post("/submit", cfg.Tickets.Submit)

	admin := tickets.Group("", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/all", cfg.Tickets.ListAll)
	admin.Get("/:id", cfg.Tickets.GetByID)
}
