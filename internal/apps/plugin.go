package apps

import (
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/assets"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps are the shared collaborators handed to every plugin.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Assets *assets.Pipeline
	Logger *slog.Logger
	// Admin authenticates the request and requires the admin role.
	Admin fiber.Handler
}

// Plugin defines the interface every content type must implement.
type Plugin interface {
	// ID returns the route segment the plugin is mounted under (/api/<id>).
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts the plugin's routes on its /api/<id> group.
	RegisterRoutes(router fiber.Router, deps *Deps)
}

// Migrator is implemented by plugins that need schema beyond AutoMigrate,
// such as partial indexes.
type Migrator interface {
	Plugin

	Migrate(db *gorm.DB) error
}

// Migrate creates the tables of every plugin and runs their extra migrations.
func Migrate(db *gorm.DB, plugins []Plugin) error {
	for _, p := range plugins {
		if models := p.Models(); len(models) > 0 {
			if err := db.AutoMigrate(models...); err != nil {
				return fmt.Errorf("failed to migrate %s: %w", p.ID(), err)
			}
		}
		if m, ok := p.(Migrator); ok {
			if err := m.Migrate(db); err != nil {
				return fmt.Errorf("failed to migrate %s: %w", p.ID(), err)
			}
		}
	}
	return nil
}
