package content

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/assets"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Kind names a content type on the wire.
type Kind struct {
	Singular string // envelope key for one document, "project"
	Plural   string // envelope key for a list, "projects"
	Label    string // message prefix, "Project"
	Folder   string // remote store folder, "portfolio/projects"
}

// Attachment describes one multipart file field of a content type.
type Attachment[M any] struct {
	Field    string
	Multiple bool
	// Required rejects a create without this file.
	Required bool
	// Attach embeds uploaded assets into m and returns the remote ids they
	// replaced, which are released once the write commits.
	Attach func(m *M, uploaded []*assets.Asset) (replaced []string)
}

// Definition is everything the engine needs to know about one content type.
// M is the persisted model, I the pointer-field input schema.
type Definition[M any, I any] struct {
	Kind Kind

	// Build fills a fresh model from a validated create input, applying defaults.
	Build func(in *I, m *M)
	// Apply patches m with the fields present in in. It returns remote ids the
	// patch detached from m, released after the write commits.
	Apply func(in *I, m *M) (released []string)
	// Assets lists every remote id m owns.
	Assets func(m *M) []string

	Attachments []Attachment[M]

	// Filter turns list query parameters into a query scope.
	Filter func(c *fiber.Ctx) (func(*gorm.DB) *gorm.DB, error)
	// Order overrides the default list ordering.
	Order string
}

// DefaultOrder is the list ordering shared by every content type: manual
// order key first, newest first among equal keys.
const DefaultOrder = "sort_order ASC, created_at DESC"

func (d *Definition[M, I]) order() string {
	if d.Order != "" {
		return d.Order
	}
	return DefaultOrder
}

// Trim trims a string pointer in place.
func Trim(p *string) *string {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
	return p
}

// Set copies *src into dst when src is present.
func Set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Or returns *p, or fallback when p is nil.
func Or[T any](p *T, fallback T) T {
	if p != nil {
		return *p
	}
	return fallback
}
