package notices

import (
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps/blog"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"github.com/gofiber/fiber/v2"
)

var Kind = content.Kind{
	Singular: "notice",
	Plural:   "notices",
	Label:    "Notice",
}

type Notice struct {
	content.Ordered
	Text        string `gorm:"type:text;not null" json:"text"`
	ContentType string `gorm:"size:10;not null" json:"contentType"`
	Priority    string `gorm:"size:10;not null" json:"priority"`
	IsActive    bool   `gorm:"not null;index" json:"isActive"`
}

type NoticeInput struct {
	Text        *string `json:"text" form:"text" validate:"required,min=1"`
	ContentType *string `json:"contentType" form:"contentType" validate:"omitempty,oneof=plain html"`
	Priority    *string `json:"priority" form:"priority" validate:"omitempty,oneof=low medium high"`
	IsActive    *bool   `json:"isActive" form:"isActive"`
	Order       *int    `json:"order" form:"order"`
}

type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string { return "notices" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Notice{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := content.NewService(deps.DB, deps.Assets, Definition())
	content.NewHandler(svc).Register(router, deps.Admin)
}

func Definition() *content.Definition[Notice, NoticeInput] {
	return &content.Definition[Notice, NoticeInput]{
		Kind: Kind,
		Build: func(in *NoticeInput, n *Notice) {
			n.ContentType = "html"
			n.Priority = "medium"
			n.IsActive = true
			apply(in, n)
		},
		Apply:  apply,
		Filter: blog.ActiveFilter,
	}
}

func apply(in *NoticeInput, n *Notice) []string {
	content.Set(&n.Text, in.Text)
	content.Set(&n.ContentType, in.ContentType)
	content.Set(&n.Priority, in.Priority)
	content.Set(&n.IsActive, in.IsActive)
	content.Set(&n.SortOrder, in.Order)
	return nil
}
