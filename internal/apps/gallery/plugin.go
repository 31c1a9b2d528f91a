package gallery

import (
	"slices"
	"strings"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/assets"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var Kind = content.Kind{
	Singular: "image",
	Plural:   "images",
	Label:    "Image",
	Folder:   "portfolio/gallery",
}

type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string { return "gallery" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Image{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := content.NewService(deps.DB, deps.Assets, Definition())
	content.NewHandler(svc).Register(router, deps.Admin)
}

// Definition requires exactly one image on create; an image sent on update
// replaces the stored one.
func Definition() *content.Definition[Image, ImageInput] {
	return &content.Definition[Image, ImageInput]{
		Kind: Kind,
		Build: func(in *ImageInput, m *Image) {
			m.Tags = []string{}
			apply(in, m)
		},
		Apply: apply,
		Assets: func(m *Image) []string {
			return []string{m.CloudinaryID}
		},
		Attachments: []content.Attachment[Image]{{
			Field:    "image",
			Required: true,
			Attach: func(m *Image, uploaded []*assets.Asset) []string {
				previous := m.CloudinaryID
				a := uploaded[0]
				m.ImageURL, m.CloudinaryID = a.URL, a.RemoteID
				m.Width, m.Height = a.Width, a.Height
				if previous == "" {
					return nil
				}
				return []string{previous}
			},
		}},
		Filter: func(c *fiber.Ctx) (func(*gorm.DB) *gorm.DB, error) {
			category := c.Query("category")
			return func(db *gorm.DB) *gorm.DB {
				if category != "" {
					db = db.Where("category = ?", category)
				}
				return db
			}, nil
		},
	}
}

func apply(in *ImageInput, m *Image) []string {
	content.Set(&m.Title, content.Trim(in.Title))
	content.Set(&m.Description, in.Description)
	content.Set(&m.Category, content.Trim(in.Category))
	content.Set(&m.SortOrder, in.Order)
	if in.Tags != nil {
		tags := make([]string, 0, len(in.Tags))
		for _, t := range in.Tags {
			if t = strings.TrimSpace(t); t != "" && !slices.Contains(tags, t) {
				tags = append(tags, t)
			}
		}
		m.Tags = tags
	}
	return nil
}
