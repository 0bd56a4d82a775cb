package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/edupro-go-api/internal/config"
	"github.com/noah-isme/edupro-go-api/internal/handler"
	"github.com/noah-isme/edupro-go-api/internal/middleware"
	"github.com/noah-isme/edupro-go-api/internal/models"
	"github.com/noah-isme/edupro-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	UserHandler       *handler.UserHandler
	CourseHandler     *handler.CourseHandler
	MaterialHandler   *handler.MaterialHandler
	AttendanceHandler *handler.AttendanceHandler
	ProjectHandler    *handler.ProjectHandler
	GroupHandler      *handler.GroupHandler
	AdminHandler      *handler.AdminHandler
	PlaygroundHandler *handler.PlaygroundHandler

	JWTMiddleware      fiber.Handler
	ActivityMiddleware fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	activityMiddleware := deps.ActivityMiddleware
	if activityMiddleware == nil {
		activityMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	staffOnly := middleware.RequireRole(models.RoleAdmin, models.RoleLecturer)

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", 10, time.Minute))
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(auth.Group("", jwtMiddleware))
	}

	protected := api.Group("", jwtMiddleware, activityMiddleware)

	if deps.UserHandler != nil {
		deps.UserHandler.Register(protected.Group("/users"), adminOnly)
	}
	if deps.CourseHandler != nil {
		deps.CourseHandler.Register(protected.Group("/courses"), staffOnly)
	}
	if deps.MaterialHandler != nil {
		deps.MaterialHandler.Register(protected.Group("/materials"), staffOnly)
	}
	if deps.AttendanceHandler != nil {
		deps.AttendanceHandler.Register(protected.Group("/attendance"))
	}
	if deps.ProjectHandler != nil {
		deps.ProjectHandler.Register(protected.Group("/projects"))
	}
	if deps.GroupHandler != nil {
		deps.GroupHandler.Register(protected.Group("/groups"))
	}
	if deps.PlaygroundHandler != nil {
		deps.PlaygroundHandler.Register(protected.Group("/playground"))
	}
	if deps.AdminHandler != nil {
		deps.AdminHandler.Register(protected.Group("/admin", adminOnly))
	}
}
