package settings

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"gorm.io/datatypes"
)

type Banner struct {
	Text     string `json:"text" validate:"required,min=1"`
	Type     string `json:"type" validate:"omitempty,oneof=info warning success error"`
	IsActive *bool  `json:"isActive"`
	Priority int    `json:"priority"`
}

type Alert struct {
	Message   string     `json:"message" validate:"required,min=1"`
	Type      string     `json:"type" validate:"omitempty,oneof=info warning success error"`
	IsActive  *bool      `json:"isActive"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type LoadingAnimation struct {
	Type      string `json:"type"`
	CustomURL string `json:"customUrl,omitempty"`
	Color     string `json:"color"`
}

type SEO struct {
	MetaTitle       string   `json:"metaTitle,omitempty"`
	MetaDescription string   `json:"metaDescription,omitempty"`
	MetaKeywords    []string `json:"metaKeywords"`
	OGImage         string   `json:"ogImage,omitempty"`
}

type Analytics struct {
	GoogleAnalyticsID string `json:"googleAnalyticsId,omitempty"`
	FacebookPixelID   string `json:"facebookPixelId,omitempty"`
}

// Settings holds site-wide configuration. At most one row exists.
type Settings struct {
	content.Single
	SiteTitle            string                               `gorm:"size:200;not null" json:"siteTitle"`
	SiteURL              string                               `gorm:"column:site_url;not null" json:"siteUrl"`
	SiteDescription      string                               `json:"siteDescription"`
	SiteLogo             string                               `json:"siteLogo"`
	SiteLogoCloudinaryID string                               `gorm:"column:site_logo_cloudinary_id" json:"siteLogoCloudinaryId"`
	Favicon              string                               `json:"favicon"`
	FaviconCloudinaryID  string                               `gorm:"column:favicon_cloudinary_id" json:"faviconCloudinaryId"`
	Notices              datatypes.JSONSlice[Banner]          `json:"notices"`
	Alerts               datatypes.JSONSlice[Alert]           `json:"alerts"`
	LoadingAnimation     datatypes.JSONType[LoadingAnimation] `json:"loadingAnimation"`
	CustomCSS            string                               `gorm:"column:custom_css;type:text" json:"customCSS"`
	CustomJS             string                               `gorm:"column:custom_js;type:text" json:"customJS"`
	MaintenanceMode      bool                                 `gorm:"not null" json:"maintenanceMode"`
	MaintenanceMessage   string                               `json:"maintenanceMessage"`
	SEO                  datatypes.JSONType[SEO]              `gorm:"column:seo" json:"seo"`
	Analytics            datatypes.JSONType[Analytics]        `json:"analytics"`
}

type LoadingAnimationInput struct {
	Type      *string `json:"type" validate:"omitempty,oneof=spinner dots pulse custom"`
	CustomURL *string `json:"customUrl" validate:"omitempty,url"`
	Color     *string `json:"color" validate:"omitempty,hexcolor"`
}

type SEOInput struct {
	MetaTitle       *string  `json:"metaTitle" validate:"omitempty,max=200"`
	MetaDescription *string  `json:"metaDescription" validate:"omitempty,max=500"`
	MetaKeywords    []string `json:"metaKeywords" validate:"omitempty,dive,max=100"`
	OGImage         *string  `json:"ogImage" validate:"omitempty,url"`
}

type AnalyticsInput struct {
	GoogleAnalyticsID *string `json:"googleAnalyticsId" validate:"omitempty,max=100"`
	FacebookPixelID   *string `json:"facebookPixelId" validate:"omitempty,max=100"`
}

type SettingsInput struct {
	SiteTitle          *string `json:"siteTitle" form:"siteTitle" validate:"omitempty,min=1,max=200"`
	SiteURL            *string `json:"siteUrl" form:"siteUrl" validate:"omitempty,url"`
	SiteDescription    *string `json:"siteDescription" form:"siteDescription" validate:"omitempty,max=500"`
	SiteLogo           *string `json:"siteLogo" form:"siteLogo" validate:"omitempty,url"`
	Favicon            *string `json:"favicon" form:"favicon" validate:"omitempty,url"`
	CustomCSS          *string `json:"customCSS" form:"customCSS"`
	CustomJS           *string `json:"customJS" form:"customJS"`
	MaintenanceMode    *bool   `json:"maintenanceMode" form:"maintenanceMode"`
	MaintenanceMessage *string `json:"maintenanceMessage" form:"maintenanceMessage" validate:"omitempty,max=500"`

	Notices          []Banner               `json:"notices" form:"-" validate:"omitempty,dive"`
	Alerts           []Alert                `json:"alerts" form:"-" validate:"omitempty,dive"`
	LoadingAnimation *LoadingAnimationInput `json:"loadingAnimation" form:"-"`
	SEO              *SEOInput              `json:"seo" form:"-"`
	Analytics        *AnalyticsInput        `json:"analytics" form:"-"`
}

func (in *SettingsInput) DecodeForm(values map[string][]string) error {
	return content.DecodeJSONFields(values, map[string]any{
		"notices":          &in.Notices,
		"alerts":           &in.Alerts,
		"loadingAnimation": &in.LoadingAnimation,
		"seo":              &in.SEO,
		"analytics":        &in.Analytics,
	})
}
