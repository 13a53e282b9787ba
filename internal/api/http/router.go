package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-desk/internal/api/http/handlers"
	"github.com/spec-kit/campus-desk/internal/auth"
	"github.com/spec-kit/campus-desk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Session        *handlers.SessionHandler
	Workspace      *handlers.WorkspaceHandler
	Employees      *handlers.EmployeesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Session.Login)
	authGroup.Post("/logout", cfg.Session.Logout)

	profile := authGroup.Group("/profile", cfg.AuthMiddleware.Handle)
	profile.Get("", cfg.Session.Profile)
	profile.Patch("", cfg.Session.UpdateProfile)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole())

	protected.Get("/departments", cfg.Workspace.ListDepartments)
	protected.Post("/departments", auth.RequireRole(domain.RoleAdmin, domain.RoleHR), cfg.Workspace.CreateDepartment)

	protected.Get("/tasks", cfg.Workspace.ListTasks)
	protected.Post("/tasks", cfg.Workspace.CreateTask)
	protected.Patch("/tasks/:id", cfg.Workspace.UpdateTask)

	protected.Get("/attendance", cfg.Workspace.ListAttendance)
	protected.Post("/attendance", cfg.Workspace.RecordAttendance)

	protected.Get("/messages", cfg.Workspace.ListMessages)
	protected.Post("/messages", cfg.Workspace.PostMessage)

	protected.Get("/employees", cfg.Employees.List)
	protected.Post("/employees", auth.RequireRole(domain.RoleAdmin, domain.RoleHR), cfg.Employees.Create)
}
