package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps/all"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/assets"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/server"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/services"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(os.Stdout, cfg.LogLevel)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.MigrateShared(db); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	plugins := all.Plugins()
	if err := apps.Migrate(db, plugins); err != nil {
		slog.Error("plugin migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("plugins migrated", "plugins", len(plugins))

	// ERROR+ records are also batched into system_logs.
	dbLogHandler := logging.NewDBHandler(db)
	logger := slog.New(logging.NewMultiHandler(
		logging.NewJSONHandler(os.Stdout, cfg.LogLevel),
		dbLogHandler,
	))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logging.StartCleanup(ctx, db, cfg.LogRetentionDays)

	tokens, err := services.NewTokenService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	if err != nil {
		slog.Error("token service init failed", "error", err)
		os.Exit(1)
	}

	store, uploadsDir, err := openStore(cfg)
	if err != nil {
		slog.Error("asset store init failed", "error", err)
		os.Exit(1)
	}
	pipeline := assets.NewPipeline(assets.NewBreakerStore(store, "assets"), assets.Options{
		StagingDir: cfg.UploadStagingDir,
		MaxBytes:   cfg.UploadMaxBytes,
		MaxFiles:   cfg.UploadMaxFiles,
		Logger:     logger.With("component", "assets"),
	})

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	app, err := server.New(server.Options{
		Config:     cfg,
		DB:         db,
		Tokens:     tokens,
		Assets:     pipeline,
		Plugins:    plugins,
		Logger:     logger,
		UploadsDir: uploadsDir,
	})
	if err != nil {
		slog.Error("server init failed", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	cancel()
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

// openStore picks Cloudinary when it is configured and local disk otherwise.
// The returned directory is non-empty only for the disk store.
func openStore(cfg *config.Config) (assets.Store, string, error) {
	if cfg.CloudinaryEnabled() {
		store, err := assets.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			return nil, "", err
		}
		slog.Info("asset store: cloudinary", "cloud", cfg.CloudinaryCloudName)
		return store, "", nil
	}

	store, err := assets.NewDiskStore(cfg.UploadDir, "/uploads")
	if err != nil {
		return nil, "", err
	}
	slog.Warn("cloudinary not configured, storing uploads on local disk", "dir", cfg.UploadDir)
	return store, cfg.UploadDir, nil
}
