package interests

import (
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var Kind = content.Kind{
	Singular: "interest",
	Plural:   "interests",
	Label:    "Interest",
}

type Interest struct {
	content.Ordered
	Name        string `gorm:"size:100;not null" json:"name"`
	Icon        string `gorm:"size:100;not null" json:"icon"`
	Description string `gorm:"size:200" json:"description"`
	Category    string `gorm:"size:100;index" json:"category"`
}

type InterestInput struct {
	Name        *string `json:"name" form:"name" validate:"required,min=1,max=100"`
	Icon        *string `json:"icon" form:"icon" validate:"required,min=1,max=100"`
	Description *string `json:"description" form:"description" validate:"omitempty,max=200"`
	Category    *string `json:"category" form:"category" validate:"omitempty,max=100"`
	Order       *int    `json:"order" form:"order"`
}

type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string { return "interests" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Interest{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := content.NewService(deps.DB, deps.Assets, Definition())
	content.NewHandler(svc).Register(router, deps.Admin)
}

func Definition() *content.Definition[Interest, InterestInput] {
	return &content.Definition[Interest, InterestInput]{
		Kind:  Kind,
		Build: func(in *InterestInput, m *Interest) { apply(in, m) },
		Apply: apply,
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

func apply(in *InterestInput, m *Interest) []string {
	content.Set(&m.Name, content.Trim(in.Name))
	content.Set(&m.Icon, content.Trim(in.Icon))
	content.Set(&m.Description, in.Description)
	content.Set(&m.Category, content.Trim(in.Category))
	content.Set(&m.SortOrder, in.Order)
	return nil
}
