package content

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Handler exposes a Service over HTTP.
type Handler[M any, I any] struct {
	svc  *Service[M, I]
	kind Kind
}

func NewHandler[M any, I any](svc *Service[M, I]) *Handler[M, I] {
	return &Handler[M, I]{svc: svc, kind: svc.def.Kind}
}

// Register mounts the standard routes. Reads are public; writes go through guard.
func (h *Handler[M, I]) Register(r fiber.Router, guard fiber.Handler) {
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", guard, h.Create)
	r.Put("/:id", guard, h.Update)
	r.Delete("/:id", guard, h.Delete)
}

func (h *Handler[M, I]) List(c *fiber.Ctx) error {
	var scope func(*gorm.DB) *gorm.DB
	if h.svc.def.Filter != nil {
		var err error
		if scope, err = h.svc.def.Filter(c); err != nil {
			return Respond(c, err)
		}
	}

	items, err := h.svc.List(c.UserContext(), scope)
	if err != nil {
		return err
	}
	return dto.List(c, len(items), fiber.Map{h.kind.Plural: items})
}

func (h *Handler[M, I]) Get(c *fiber.Ctx) error {
	id, err := ParseID(c, h.kind)
	if err != nil {
		return err
	}
	m, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dto.OK(c, "", fiber.Map{h.kind.Singular: m})
}

func (h *Handler[M, I]) Create(c *fiber.Ctx) error {
	in := new(I)
	files, err := Decode(c, in)
	if err != nil {
		return Respond(c, err)
	}

	m, err := h.svc.Create(c.UserContext(), in, files)
	if err != nil {
		return Respond(c, err)
	}
	return dto.Created(c, h.kind.Label+" created successfully", fiber.Map{h.kind.Singular: m})
}

func (h *Handler[M, I]) Update(c *fiber.Ctx) error {
	id, err := ParseID(c, h.kind)
	if err != nil {
		return err
	}
	in := new(I)
	files, err := Decode(c, in)
	if err != nil {
		return Respond(c, err)
	}

	m, err := h.svc.Update(c.UserContext(), id, in, files)
	if err != nil {
		return Respond(c, err)
	}
	return dto.OK(c, h.kind.Label+" updated successfully", fiber.Map{h.kind.Singular: m})
}

func (h *Handler[M, I]) Delete(c *fiber.Ctx) error {
	id, err := ParseID(c, h.kind)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return dto.OK(c, h.kind.Label+" deleted successfully", nil)
}

// ParseID reads the :id route parameter.
func ParseID(c *fiber.Ctx, kind Kind) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+kind.Singular+" id")
	}
	return id, nil
}

// Respond writes validation failures at the boundary and hands every other
// error to the app's error handler.
func Respond(c *fiber.Ctx, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return dto.ValidationFailed(c, ve.Fields)
	}
	return err
}
