package settings

import (
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/assets"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

const (
	DefaultSiteTitle          = "DEV ASIF"
	DefaultSiteURL            = "http://localhost:3000"
	DefaultSiteDescription    = "Modern Portfolio Website"
	DefaultMaintenanceMessage = "Site is under maintenance. Please check back soon!"
)

var Kind = content.Kind{
	Singular: "settings",
	Label:    "Settings",
	Folder:   "portfolio/settings",
}

type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string { return "settings" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Settings{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := content.NewSingleton(deps.DB, deps.Assets, Definition())
	content.NewSingletonHandler(svc).Register(router, deps.Admin)
}

func Definition() *content.SingletonDefinition[Settings, SettingsInput] {
	return &content.SingletonDefinition[Settings, SettingsInput]{
		Kind:  Kind,
		New:   newSettings,
		Apply: apply,
		Attachments: []content.Attachment[Settings]{
			{
				Field: "siteLogo",
				Attach: func(s *Settings, uploaded []*assets.Asset) []string {
					return swap(&s.SiteLogo, &s.SiteLogoCloudinaryID, uploaded[0])
				},
			},
			{
				Field: "favicon",
				Attach: func(s *Settings, uploaded []*assets.Asset) []string {
					return swap(&s.Favicon, &s.FaviconCloudinaryID, uploaded[0])
				},
			},
		},
	}
}

func newSettings() *Settings {
	return &Settings{
		SiteTitle:          DefaultSiteTitle,
		SiteURL:            DefaultSiteURL,
		SiteDescription:    DefaultSiteDescription,
		MaintenanceMessage: DefaultMaintenanceMessage,
		Notices:            []Banner{},
		Alerts:             []Alert{},
		LoadingAnimation:   datatypes.NewJSONType(LoadingAnimation{Type: "spinner", Color: "#8b5cf6"}),
		SEO:                datatypes.NewJSONType(SEO{MetaKeywords: []string{}}),
		Analytics:          datatypes.NewJSONType(Analytics{}),
	}
}

func apply(in *SettingsInput, s *Settings) []string {
	content.Set(&s.SiteTitle, content.Trim(in.SiteTitle))
	content.Set(&s.SiteURL, content.Trim(in.SiteURL))
	content.Set(&s.SiteDescription, in.SiteDescription)
	content.Set(&s.CustomCSS, in.CustomCSS)
	content.Set(&s.CustomJS, in.CustomJS)
	content.Set(&s.MaintenanceMode, in.MaintenanceMode)
	content.Set(&s.MaintenanceMessage, in.MaintenanceMessage)

	if in.Notices != nil {
		s.Notices = normalizeBanners(in.Notices)
	}
	if in.Alerts != nil {
		s.Alerts = normalizeAlerts(in.Alerts)
	}
	if la := in.LoadingAnimation; la != nil {
		v := s.LoadingAnimation.Data()
		content.Set(&v.Type, la.Type)
		content.Set(&v.CustomURL, la.CustomURL)
		content.Set(&v.Color, la.Color)
		s.LoadingAnimation = datatypes.NewJSONType(v)
	}
	if seo := in.SEO; seo != nil {
		v := s.SEO.Data()
		content.Set(&v.MetaTitle, seo.MetaTitle)
		content.Set(&v.MetaDescription, seo.MetaDescription)
		content.Set(&v.OGImage, seo.OGImage)
		if seo.MetaKeywords != nil {
			v.MetaKeywords = seo.MetaKeywords
		}
		s.SEO = datatypes.NewJSONType(v)
	}
	if a := in.Analytics; a != nil {
		v := s.Analytics.Data()
		content.Set(&v.GoogleAnalyticsID, a.GoogleAnalyticsID)
		content.Set(&v.FacebookPixelID, a.FacebookPixelID)
		s.Analytics = datatypes.NewJSONType(v)
	}

	var released []string
	released = append(released, detach(&s.SiteLogo, &s.SiteLogoCloudinaryID, in.SiteLogo)...)
	released = append(released, detach(&s.Favicon, &s.FaviconCloudinaryID, in.Favicon)...)
	return released
}

// swap stores an uploaded asset in a url/id pair and returns the id it replaced.
func swap(url, id *string, a *assets.Asset) []string {
	previous := *id
	*url, *id = a.URL, a.RemoteID
	if previous == "" {
		return nil
	}
	return []string{previous}
}

// detach applies a hand-entered url; a changed url drops the uploaded asset.
func detach(url, id *string, next *string) []string {
	if next == nil || *next == *url {
		return nil
	}
	*url = *next
	previous := *id
	*id = ""
	if previous == "" {
		return nil
	}
	return []string{previous}
}

func normalizeBanners(in []Banner) []Banner {
	out := make([]Banner, len(in))
	for i, b := range in {
		if b.Type == "" {
			b.Type = "info"
		}
		if b.IsActive == nil {
			b.IsActive = boolPtr(true)
		}
		out[i] = b
	}
	return out
}

func normalizeAlerts(in []Alert) []Alert {
	out := make([]Alert, len(in))
	for i, a := range in {
		if a.Type == "" {
			a.Type = "info"
		}
		if a.IsActive == nil {
			a.IsActive = boolPtr(true)
		}
		out[i] = a
	}
	return out
}

func boolPtr(b bool) *bool { return &b }
