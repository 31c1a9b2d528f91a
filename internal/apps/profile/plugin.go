package profile

import (
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/assets"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

var Kind = content.Kind{
	Singular: "profile",
	Label:    "Profile",
	Folder:   "portfolio/profile",
}

type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string { return "profile" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Profile{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := content.NewSingleton(deps.DB, deps.Assets, Definition())
	content.NewSingletonHandler(svc).Register(router, deps.Admin)
}

func Definition() *content.SingletonDefinition[Profile, ProfileInput] {
	return &content.SingletonDefinition[Profile, ProfileInput]{
		Kind:  Kind,
		New:   newProfile,
		Apply: apply,
		Attachments: []content.Attachment[Profile]{{
			Field: "avatar",
			Attach: func(p *Profile, uploaded []*assets.Asset) []string {
				previous := p.AvatarCloudinaryID
				p.Avatar, p.AvatarCloudinaryID = uploaded[0].URL, uploaded[0].RemoteID
				if previous == "" {
					return nil
				}
				return []string{previous}
			},
		}},
	}
}

func newProfile() *Profile {
	stats := Stats{Experience: "0", Projects: "0", Clients: "0", Awards: "0"}
	return &Profile{
		Stats:          datatypes.NewJSONType(stats),
		Experience:     []Experience{},
		Education:      []Education{},
		CoreSkills:     []Skill{},
		Languages:      []Language{},
		Interests:      []string{},
		SocialLinks:    []SocialLink{},
		Certifications: []Certification{},
		Achievements:   []Achievement{},
	}
}

func apply(in *ProfileInput, p *Profile) []string {
	content.Set(&p.Name, content.Trim(in.Name))
	content.Set(&p.Title, content.Trim(in.Title))
	content.Set(&p.Tagline, content.Trim(in.Tagline))
	content.Set(&p.Location, content.Trim(in.Location))
	content.Set(&p.Email, content.Trim(in.Email))
	content.Set(&p.Phone, content.Trim(in.Phone))
	content.Set(&p.Bio, in.Bio)
	content.Set(&p.About, in.About)

	if in.Stats != nil {
		stats := p.Stats.Data()
		content.Set(&stats.Experience, in.Stats.Experience)
		content.Set(&stats.Projects, in.Stats.Projects)
		content.Set(&stats.Clients, in.Stats.Clients)
		content.Set(&stats.Awards, in.Stats.Awards)
		p.Stats = datatypes.NewJSONType(stats)
	}

	replace(&p.Experience, in.Experience)
	replace(&p.Education, in.Education)
	replace(&p.CoreSkills, in.CoreSkills)
	replace(&p.Languages, in.Languages)
	replace(&p.Interests, in.Interests)
	replace(&p.SocialLinks, in.SocialLinks)
	replace(&p.Certifications, in.Certifications)
	replace(&p.Achievements, in.Achievements)

	if in.Avatar != nil && *in.Avatar != p.Avatar {
		p.Avatar = *in.Avatar
		if previous := p.AvatarCloudinaryID; previous != "" {
			p.AvatarCloudinaryID = ""
			return []string{previous}
		}
	}
	return nil
}

func replace[T any](dst *datatypes.JSONSlice[T], src []T) {
	if src != nil {
		*dst = src
	}
}
