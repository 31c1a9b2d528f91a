// Package server assembles the Fiber application shared by the server binary
// and the HTTP tests.
package server

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/assets"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Options struct {
	Config  *config.Config
	DB      *gorm.DB
	Tokens  *services.TokenService
	Assets  *assets.Pipeline
	Plugins []apps.Plugin
	Logger  *slog.Logger

	// UploadsDir is served under /uploads when assets live on local disk.
	UploadsDir string
	// Quiet disables the per-request access log.
	Quiet bool
}

func New(opts Options) (*fiber.App, error) {
	cfg := opts.Config
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	authService, err := services.NewAuthService(opts.DB, opts.Tokens, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	// Room for a full batch of images plus the form fields.
	bodyLimit := int(cfg.UploadMaxBytes)*cfg.UploadMaxFiles + 1<<20

	app := fiber.New(fiber.Config{
		AppName:      "portfolio-backend",
		BodyLimit:    bodyLimit,
		ErrorHandler: handlers.ErrorHandler(cfg),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	if cfg.SentryDSN != "" {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	if !opts.Quiet {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
		}))
	}
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.Metrics())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	if opts.UploadsDir != "" {
		app.Static("/uploads", opts.UploadsDir)
	}

	gate := middleware.NewGate(opts.Tokens)
	deps := &apps.Deps{
		DB:     opts.DB,
		Config: cfg,
		Assets: opts.Assets,
		Logger: opts.Logger,
		Admin:  gate.Require(models.RoleAdmin),
	}

	routes.Setup(app, deps, gate,
		handlers.NewAuthHandler(authService),
		handlers.NewHealthHandler(opts.DB),
		opts.Plugins,
	)
	return app, nil
}
