package projects

import (
	"slices"
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/assets"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var Kind = content.Kind{
	Singular: "project",
	Plural:   "projects",
	Label:    "Project",
	Folder:   "portfolio/projects",
}

func Definition() *content.Definition[Project, ProjectInput] {
	return &content.Definition[Project, ProjectInput]{
		Kind:   Kind,
		Build:  build,
		Apply:  apply,
		Assets: func(p *Project) []string { return p.ImagesCloudinaryIDs },
		Attachments: []content.Attachment[Project]{{
			Field:    "images",
			Multiple: true,
			Attach:   appendImages,
		}},
		Filter: filter,
	}
}

func build(in *ProjectInput, p *Project) {
	p.Status = StatusCompleted
	p.Images = []string{}
	p.ImagesCloudinaryIDs = []string{}
	apply(in, p)
}

func apply(in *ProjectInput, p *Project) []string {
	content.Set(&p.Title, content.Trim(in.Title))
	content.Set(&p.Description, in.Description)
	content.Set(&p.LongDescription, in.LongDescription)
	content.Set(&p.GithubURL, content.Trim(in.GithubURL))
	content.Set(&p.LiveURL, content.Trim(in.LiveURL))
	content.Set(&p.Featured, in.Featured)
	content.Set(&p.SortOrder, in.Order)
	content.Set(&p.Category, content.Trim(in.Category))
	content.Set(&p.Status, in.Status)
	if in.Technologies != nil {
		p.Technologies = slices.Clone(in.Technologies)
	}
	if in.StartDate != nil {
		p.StartDate = parseDate(*in.StartDate)
	}
	if in.EndDate != nil {
		p.EndDate = parseDate(*in.EndDate)
	}
	return removeImages(p, in.RemoveImageIDs)
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := validation.ParseDate(s)
	if err != nil {
		return nil
	}
	return &t
}

// removeImages drops the named remote ids and their urls, returning the ids
// that were actually attached.
func removeImages(p *Project, ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	var removed []string
	images := make([]string, 0, len(p.Images))
	remoteIDs := make([]string, 0, len(p.ImagesCloudinaryIDs))
	for i, id := range p.ImagesCloudinaryIDs {
		if slices.Contains(ids, id) {
			removed = append(removed, id)
			continue
		}
		remoteIDs = append(remoteIDs, id)
		if i < len(p.Images) {
			images = append(images, p.Images[i])
		}
	}
	p.Images, p.ImagesCloudinaryIDs = images, remoteIDs
	return removed
}

// appendImages adds new uploads after the existing images.
func appendImages(p *Project, uploaded []*assets.Asset) []string {
	for _, a := range uploaded {
		p.Images = append(p.Images, a.URL)
		p.ImagesCloudinaryIDs = append(p.ImagesCloudinaryIDs, a.RemoteID)
	}
	return nil
}

func filter(c *fiber.Ctx) (func(*gorm.DB) *gorm.DB, error) {
	featured, err := content.BoolQuery(c, "featured")
	if err != nil {
		return nil, err
	}
	status, err := content.EnumQuery(c, "status", StatusCompleted, StatusInProgress, StatusPlanned)
	if err != nil {
		return nil, err
	}
	category := c.Query("category")

	return func(db *gorm.DB) *gorm.DB {
		if featured != nil {
			db = db.Where("featured = ?", *featured)
		}
		if category != "" {
			db = db.Where("category = ?", category)
		}
		if status != "" {
			db = db.Where("status = ?", status)
		}
		return db
	}, nil
}
