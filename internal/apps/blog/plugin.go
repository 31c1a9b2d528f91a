package blog

import (
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultReadTime = "5 min read"
	defaultAuthor   = "Admin"
)

var Kind = content.Kind{
	Singular: "blog",
	Plural:   "blogs",
	Label:    "Blog",
}

type Post struct {
	content.Ordered
	Title      string                      `gorm:"size:200;not null" json:"title"`
	Excerpt    string                      `gorm:"size:500;not null" json:"excerpt"`
	Content    string                      `gorm:"type:text;not null" json:"content"`
	CoverImage string                      `gorm:"column:cover_image;not null" json:"coverImage"`
	Tags       datatypes.JSONSlice[string] `json:"tags"`
	ReadTime   string                      `gorm:"size:50" json:"readTime"`
	Author     string                      `gorm:"size:100" json:"author"`
	IsActive   bool                        `gorm:"not null;index" json:"isActive"`
}

func (Post) TableName() string { return "blog_posts" }

type PostInput struct {
	Title      *string  `json:"title" form:"title" validate:"required,min=1,max=200"`
	Excerpt    *string  `json:"excerpt" form:"excerpt" validate:"required,min=1,max=500"`
	Content    *string  `json:"content" form:"content" validate:"required,min=1"`
	CoverImage *string  `json:"coverImage" form:"coverImage" validate:"required,url"`
	Tags       []string `json:"tags" form:"tags" validate:"omitempty,dive,max=50"`
	ReadTime   *string  `json:"readTime" form:"readTime" validate:"omitempty,max=50"`
	Author     *string  `json:"author" form:"author" validate:"omitempty,max=100"`
	IsActive   *bool    `json:"isActive" form:"isActive"`
	Order      *int     `json:"order" form:"order"`
}

type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string { return "blog" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Post{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := content.NewService(deps.DB, deps.Assets, Definition())
	content.NewHandler(svc).Register(router, deps.Admin)
}

func Definition() *content.Definition[Post, PostInput] {
	return &content.Definition[Post, PostInput]{
		Kind: Kind,
		Build: func(in *PostInput, m *Post) {
			m.Tags = []string{}
			m.ReadTime = defaultReadTime
			m.Author = defaultAuthor
			m.IsActive = true
			apply(in, m)
		},
		Apply:  apply,
		Filter: ActiveFilter,
	}
}

func apply(in *PostInput, m *Post) []string {
	content.Set(&m.Title, content.Trim(in.Title))
	content.Set(&m.Excerpt, in.Excerpt)
	content.Set(&m.Content, in.Content)
	content.Set(&m.CoverImage, content.Trim(in.CoverImage))
	content.Set(&m.ReadTime, in.ReadTime)
	content.Set(&m.Author, content.Trim(in.Author))
	content.Set(&m.IsActive, in.IsActive)
	content.Set(&m.SortOrder, in.Order)
	if in.Tags != nil {
		m.Tags = in.Tags
	}
	return nil
}

// ActiveFilter narrows a list with ?active=true|false.
func ActiveFilter(c *fiber.Ctx) (func(*gorm.DB) *gorm.DB, error) {
	active, err := content.BoolQuery(c, "active")
	if err != nil {
		return nil, err
	}
	return func(db *gorm.DB) *gorm.DB {
		if active != nil {
			db = db.Where("is_active = ?", *active)
		}
		return db
	}, nil
}
