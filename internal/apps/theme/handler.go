package theme

import (
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var Kind = content.Kind{Singular: "theme", Plural: "themes", Label: "Theme"}

type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string { return "theme" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Theme{}}
}

func (p *Plugin) Migrate(db *gorm.DB) error { return Migrate(db) }

func (p *Plugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	h := &Handler{svc: NewService(deps.DB, deps.Assets)}

	router.Get("/", h.Active)
	router.Get("/all", deps.Admin, h.List)
	router.Post("/", deps.Admin, h.Create)
	router.Put("/", deps.Admin, h.UpdateActive)
	router.Post("/reset", deps.Admin, h.Reset)
	router.Put("/:id", deps.Admin, h.Update)
	router.Post("/:id/activate", deps.Admin, h.Activate)
}

type Handler struct {
	svc *Service
}

func (h *Handler) Active(c *fiber.Ctx) error {
	t, err := h.svc.GetActive(c.UserContext())
	if err != nil {
		return err
	}
	return dto.OK(c, "", fiber.Map{"theme": t})
}

func (h *Handler) List(c *fiber.Ctx) error {
	themes, err := h.svc.List(c.UserContext())
	if err != nil {
		return err
	}
	return dto.List(c, len(themes), fiber.Map{"themes": themes})
}

func (h *Handler) Create(c *fiber.Ctx) error {
	in := new(ThemeInput)
	files, err := content.Decode(c, in)
	if err != nil {
		return content.Respond(c, err)
	}
	t, err := h.svc.Create(c.UserContext(), in, files["favicon"])
	if err != nil {
		return content.Respond(c, err)
	}
	return dto.Created(c, "Theme created successfully", fiber.Map{"theme": t})
}

func (h *Handler) UpdateActive(c *fiber.Ctx) error {
	in := new(ThemeInput)
	files, err := content.Decode(c, in)
	if err != nil {
		return content.Respond(c, err)
	}
	t, err := h.svc.UpdateActive(c.UserContext(), in, files["favicon"])
	if err != nil {
		return content.Respond(c, err)
	}
	return dto.OK(c, "Theme updated successfully", fiber.Map{"theme": t})
}

func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := content.ParseID(c, Kind)
	if err != nil {
		return err
	}
	in := new(ThemeInput)
	files, err := content.Decode(c, in)
	if err != nil {
		return content.Respond(c, err)
	}
	t, err := h.svc.Update(c.UserContext(), id, in, files["favicon"])
	if err != nil {
		return content.Respond(c, err)
	}
	return dto.OK(c, "Theme updated successfully", fiber.Map{"theme": t})
}

func (h *Handler) Activate(c *fiber.Ctx) error {
	id, err := content.ParseID(c, Kind)
	if err != nil {
		return err
	}
	t, err := h.svc.Activate(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dto.OK(c, "Theme activated successfully", fiber.Map{"theme": t})
}

func (h *Handler) Reset(c *fiber.Ctx) error {
	t, err := h.svc.Reset(c.UserContext())
	if err != nil {
		return err
	}
	return dto.OK(c, "Theme reset to default", fiber.Map{"theme": t})
}
