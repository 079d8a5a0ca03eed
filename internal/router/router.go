package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/quizhub-api/internal/config"
	"github.com/noah-isme/quizhub-api/internal/handler"
	"github.com/noah-isme/quizhub-api/internal/middleware"
	"github.com/noah-isme/quizhub-api/internal/models"
	"github.com/noah-isme/quizhub-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	QuizHandler      *handler.QuizHandler
	AdminQuizHandler *handler.AdminQuizHandler
	AuthHandler      *handler.AuthHandler
	SeedHandler      *handler.SeedHandler
	JWTMiddleware    fiber.Handler
	// SubmitLimiter and AuthLimiter guard the anonymous write routes. Nil disables limiting.
	SubmitLimiter fiber.Handler
	AuthLimiter   fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = middleware.JWTProtected(cfg.JWTSecret)
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth", optional(deps.AuthLimiter)))
	}

	if deps.QuizHandler != nil {
		quizzes := api.Group("/quizzes")
		deps.QuizHandler.Register(quizzes)
		deps.QuizHandler.RegisterSubmit(quizzes, optional(deps.SubmitLimiter))
	}

	if deps.AdminQuizHandler != nil {
		admin := app.Group("/api/admin/quizzes", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
		deps.AdminQuizHandler.Register(admin)
	}

	if deps.SeedHandler != nil {
		deps.SeedHandler.Register(api.Group("/tools/seed"))
	}
}

func optional(h fiber.Handler) fiber.Handler {
	if h == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return h
}
