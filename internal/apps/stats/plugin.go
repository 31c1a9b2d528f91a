package stats

import (
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// Plugin serves admin dashboard counters. It owns no tables.
type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string { return "stats" }

func (p *Plugin) Models() []interface{} { return nil }

func (p *Plugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := NewService(deps.DB)

	router.Get("/overview", deps.Admin, func(c *fiber.Ctx) error {
		overview, err := svc.Overview(c.UserContext())
		if err != nil {
			return err
		}
		return dto.OK(c, "", fiber.Map{"stats": overview})
	})

	router.Get("/analytics", deps.Admin, func(c *fiber.Ctx) error {
		analytics, err := svc.Analytics(c.UserContext())
		if err != nil {
			return err
		}
		return dto.OK(c, "", fiber.Map{"analytics": analytics})
	})
}
