package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Complaints     *handlers.ComplaintsHandler
	Agencies       *handlers.AgenciesHandler
	Categories     *handlers.CategoriesHandler
	Citizens       *handlers.CitizensHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimiter    *RateLimiter
	RateLimits     config.RateLimitConfig
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.RateLimiter.Limit("global",
		cfg.RateLimits.GlobalMax, cfg.RateLimits.GlobalWindow()))

	resetLimit := cfg.RateLimiter.Limit("password-reset",
		cfg.RateLimits.PasswordResetMax, cfg.RateLimits.PasswordResetWindow())

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/forgot-password", resetLimit, cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password", resetLimit, cfg.Auth.ResetPassword)
	authGroup.Get("/profile", cfg.AuthMiddleware.Handle, cfg.Auth.Profile)

	complaints := api.Group("/complaints", cfg.AuthMiddleware.Handle)
	complaints.Post("/", auth.RequireRoles(domain.RoleCitizen), cfg.Complaints.Create)
	complaints.Get("/", cfg.Complaints.List)
	complaints.Get("/:id", cfg.Complaints.Get)
	complaints.Put("/:id", cfg.Complaints.Update)
	complaints.Delete("/:id", cfg.Complaints.Remove)
	complaints.Post("/:id/comments", cfg.Complaints.AddComment)

	directoryRead := auth.RequireRoles(domain.RoleAdmin, domain.RoleAgencyAdmin, domain.RoleAgencyStaff)
	adminOnly := auth.RequireRoles(domain.RoleAdmin)

	agencies := api.Group("/agencies", cfg.AuthMiddleware.Handle)
	agencies.Post("/", adminOnly, cfg.Agencies.Create)
	agencies.Get("/", directoryRead, cfg.Agencies.List)
	agencies.Get("/:id", directoryRead, cfg.Agencies.Get)
	agencies.Put("/:id", adminOnly, cfg.Agencies.Update)
	agencies.Delete("/:id", adminOnly, cfg.Agencies.Remove)
	agencies.Post("/:id/staff/:staffId", adminOnly, cfg.Agencies.AssignStaff)
	agencies.Delete("/:id/staff/:staffId", adminOnly, cfg.Agencies.RemoveStaff)

	categories := api.Group("/categories", cfg.AuthMiddleware.Handle)
	categories.Post("/", adminOnly, cfg.Categories.Create)
	categories.Get("/", directoryRead, cfg.Categories.List)
	categories.Get("/:id", directoryRead, cfg.Categories.Get)
	categories.Put("/:id", adminOnly, cfg.Categories.Update)
	categories.Delete("/:id", adminOnly, cfg.Categories.Remove)

	citizens := api.Group("/citizens")
	citizens.Post("/", cfg.Citizens.Create)
	citizens.Get("/profile", cfg.AuthMiddleware.Handle, cfg.Citizens.Profile)
	citizens.Put("/profile", cfg.AuthMiddleware.Handle, cfg.Citizens.UpdateProfile)
	citizens.Get("/", cfg.AuthMiddleware.Handle, adminOnly, cfg.Citizens.List)
	citizens.Get("/:id", cfg.AuthMiddleware.Handle, adminOnly, cfg.Citizens.Get)
	citizens.Put("/:id", cfg.AuthMiddleware.Handle, adminOnly, cfg.Citizens.Update)
	citizens.Delete("/:id", cfg.AuthMiddleware.Handle, adminOnly, cfg.Citizens.Remove)
}
