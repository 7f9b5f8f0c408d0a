package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/presensi-admin-api/internal/config"
	"github.com/noah-isme/presensi-admin-api/internal/handler"
	"github.com/noah-isme/presensi-admin-api/internal/middleware"
	"github.com/noah-isme/presensi-admin-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	StudentHandler    *handler.StudentHandler
	EnrollmentHandler *handler.EnrollmentHandler
	AttendanceHandler *handler.AttendanceHandler
	PermissionHandler *handler.PermissionHandler
	CourseHandler     *handler.CourseHandler
	JWTMiddleware     fiber.Handler
	LoginRateLimiter  fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	adminOnly := middleware.RequireRole("admin")

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		if deps.LoginRateLimiter != nil {
			auth.Use("/login", deps.LoginRateLimiter)
		}
		deps.AuthHandler.RegisterPublic(auth)

		protected := api.Group("/auth", jwtMiddleware)
		deps.AuthHandler.RegisterProtected(protected)
	}

	if deps.StudentHandler != nil {
		students := api.Group("/students", jwtMiddleware, adminOnly)
		deps.StudentHandler.Register(students)
	}

	if deps.EnrollmentHandler != nil {
		enrollments := api.Group("/enrollments", jwtMiddleware, adminOnly)
		deps.EnrollmentHandler.Register(enrollments)
	}

	if deps.AttendanceHandler != nil {
		attendance := api.Group("/attendance", jwtMiddleware, adminOnly)
		deps.AttendanceHandler.Register(attendance)
	}

	if deps.PermissionHandler != nil {
		permissions := api.Group("/permissions", jwtMiddleware, adminOnly)
		deps.PermissionHandler.Register(permissions)
	}

	if deps.CourseHandler != nil {
		courses := api.Group("/courses", jwtMiddleware, adminOnly)
		deps.CourseHandler.Register(courses)
	}
}
