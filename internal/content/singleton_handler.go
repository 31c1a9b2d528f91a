package content

import (
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type SingletonHandler[M any, I any] struct {
	svc  *Singleton[M, I]
	kind Kind
}

func NewSingletonHandler[M any, I any](svc *Singleton[M, I]) *SingletonHandler[M, I] {
	return &SingletonHandler[M, I]{svc: svc, kind: svc.def.Kind}
}

func (h *SingletonHandler[M, I]) Register(r fiber.Router, guard fiber.Handler) {
	r.Get("/", h.Get)
	r.Put("/", guard, h.Upsert)
}

// Get answers {kind: null} before the document is first written.
func (h *SingletonHandler[M, I]) Get(c *fiber.Ctx) error {
	m, err := h.svc.Get(c.UserContext())
	if err != nil {
		return err
	}
	return dto.OK(c, "", fiber.Map{h.kind.Singular: m})
}

func (h *SingletonHandler[M, I]) Upsert(c *fiber.Ctx) error {
	in := new(I)
	files, err := Decode(c, in)
	if err != nil {
		return Respond(c, err)
	}

	m, err := h.svc.Upsert(c.UserContext(), in, files)
	if err != nil {
		return Respond(c, err)
	}
	return dto.OK(c, h.kind.Label+" updated successfully", fiber.Map{h.kind.Singular: m})
}
