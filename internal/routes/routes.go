package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	deps *apps.Deps,
	gate *middleware.Gate,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	plugins []apps.Plugin,
) {
	app.Get("/health", healthHandler.Check)

	api := app.Group("/api")
	api.Get("/health", healthHandler.Check)

	// Credential endpoints get a per-IP limit; /me and /logout do not.
	throttle := func(c *fiber.Ctx) error { return c.Next() }
	if max := deps.Config.AuthRateLimit; max > 0 {
		throttle = limiter.New(limiter.Config{
			Max:               max,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
			LimitReached: func(c *fiber.Ctx) error {
				return dto.Fail(c, fiber.StatusTooManyRequests, "Too many attempts. Please try again later.")
			},
		})
	}

	auth := api.Group("/auth")
	auth.Post("/login", throttle, authHandler.Login)
	auth.Post("/refresh", throttle, authHandler.Refresh)
	auth.Get("/me", gate.Authenticate(), authHandler.Me)
	auth.Post("/logout", gate.Authenticate(), authHandler.Logout)

	for _, p := range plugins {
		p.RegisterRoutes(api.Group("/"+p.ID()), deps)
	}

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Route "+c.Method()+" "+c.Path()+" not found")
	})
}
