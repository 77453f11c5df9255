package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/faikerkan/QuailtyHUB/internal/auth"
	"github.com/faikerkan/QuailtyHUB/internal/config"
	"github.com/faikerkan/QuailtyHUB/internal/handler"
	"github.com/faikerkan/QuailtyHUB/internal/middleware"
	"github.com/faikerkan/QuailtyHUB/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	UserHandler         *handler.UserHandler
	RubricHandler       *handler.RubricHandler
	CallHandler         *handler.CallHandler
	EvaluationHandler   *handler.EvaluationHandler
	DashboardHandler    *handler.DashboardHandler
	NotificationHandler *handler.NotificationHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.UserHandler != nil {
		authGroup := api.Group("/auth", middleware.RateLimit("auth", 10, time.Minute))
		deps.UserHandler.RegisterAuth(authGroup)

		userGroup := api.Group("/users", jwtMiddleware)
		deps.UserHandler.Register(userGroup)
	}

	if deps.RubricHandler != nil {
		rubricGroup := api.Group("/rubrics", jwtMiddleware)
		deps.RubricHandler.Register(rubricGroup)
	}

	if deps.CallHandler != nil {
		callGroup := api.Group("/calls", jwtMiddleware)
		deps.CallHandler.Register(callGroup)

		queueGroup := api.Group("/call-queues", jwtMiddleware)
		deps.CallHandler.RegisterQueues(queueGroup)
	}

	if deps.EvaluationHandler != nil {
		evaluationGroup := api.Group("/evaluations", jwtMiddleware)
		deps.EvaluationHandler.Register(evaluationGroup)
	}

	if deps.DashboardHandler != nil {
		dashboardGroup := api.Group("/dashboard", jwtMiddleware, middleware.RequireRole(auth.RoleAdmin))
		deps.DashboardHandler.Register(dashboardGroup)
	}

	if deps.NotificationHandler != nil {
		notificationGroup := api.Group("/notifications", jwtMiddleware)
		deps.NotificationHandler.Register(notificationGroup)
	}
}
