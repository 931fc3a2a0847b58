package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/onestep-labs/urban-solve/internal/api/http/handlers"
	"github.com/onestep-labs/urban-solve/internal/auth"
	"github.com/onestep-labs/urban-solve/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Auth              *handlers.AuthHandler
	Complaints        *handlers.ComplaintsHandler
	Admin             *handlers.AdminHandler
	Reference         *handlers.ReferenceHandler
	AuthMiddleware    *auth.AuthMiddleware
	SubmissionLimiter fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/signup", cfg.Auth.Signup)
	api.Post("/signin", cfg.Auth.Signin)

	api.Post("/complaints", cfg.SubmissionLimiter, cfg.Complaints.Submit)
	api.Get("/complaints/:userId", cfg.Complaints.ListByUser)

	api.Get("/locations", cfg.Reference.Locations)
	api.Get("/problems", cfg.Reference.Problems)

	api.Put("/complaints/:id/status",
		cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleStaff, domain.RoleAdmin),
		cfg.Complaints.UpdateStatus)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleStaff, domain.RoleAdmin))
	admin.Get("/complaints", cfg.Admin.ListComplaints)
	admin.Get("/stats", cfg.Admin.Stats)
	admin.Put("/complaints/:id/assign", cfg.Admin.Assign)
}
