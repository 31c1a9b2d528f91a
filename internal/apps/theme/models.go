package theme

import (
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"gorm.io/datatypes"
)

type Colors struct {
	Primary             string `json:"primary"`
	Secondary           string `json:"secondary"`
	Accent              string `json:"accent"`
	Background          string `json:"background"`
	BackgroundSecondary string `json:"backgroundSecondary"`
	Text                string `json:"text"`
	TextSecondary       string `json:"textSecondary"`
	Border              string `json:"border"`
	CardBackground      string `json:"cardBackground"`
	CardHover           string `json:"cardHover"`
}

type Fonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
	Code    string `json:"code"`
}

type Effects struct {
	BorderRadius string `json:"borderRadius"`
	Shadow       string `json:"shadow"`
	ShadowHover  string `json:"shadowHover"`
	GlowColor    string `json:"glowColor"`
}

type Gradients struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// Theme is a named set of design tokens. At most one theme is active.
type Theme struct {
	content.Record
	Name                string                        `gorm:"size:100;not null" json:"name"`
	Colors              datatypes.JSONType[Colors]    `json:"colors"`
	Fonts               datatypes.JSONType[Fonts]     `json:"fonts"`
	Effects             datatypes.JSONType[Effects]   `json:"effects"`
	Gradients           datatypes.JSONType[Gradients] `json:"gradients"`
	EnableAnimations    bool                          `gorm:"not null" json:"enableAnimations"`
	ScrollAnimation     string                        `gorm:"size:50" json:"scrollAnimation"`
	FaviconURL          string                        `gorm:"column:favicon_url" json:"faviconUrl"`
	FaviconCloudinaryID string                        `gorm:"column:favicon_cloudinary_id" json:"faviconCloudinaryId"`
	IsActive            bool                          `gorm:"not null;index" json:"isActive"`
	IsDefault           bool                          `gorm:"not null" json:"isDefault"`
}

var (
	DefaultColors = Colors{
		Primary:             "#8b5cf6",
		Secondary:           "#a78bfa",
		Accent:              "#c084fc",
		Background:          "#0a0a0f",
		BackgroundSecondary: "#1a1a2e",
		Text:                "#ffffff",
		TextSecondary:       "#a1a1aa",
		Border:              "#8b5cf6",
		CardBackground:      "#1e1e30",
		CardHover:           "#2a2a40",
	}
	DefaultFonts = Fonts{
		Heading: "Inter, sans-serif",
		Body:    "Inter, sans-serif",
		Code:    "Fira Code, monospace",
	}
	DefaultEffects = Effects{
		BorderRadius: "1.5rem",
		Shadow:       "0 4px 20px rgba(139, 92, 246, 0.3)",
		ShadowHover:  "0 8px 30px rgba(139, 92, 246, 0.5)",
		GlowColor:    "rgba(139, 92, 246, 0.5)",
	}
	DefaultGradients = Gradients{
		Primary:   "linear-gradient(135deg, #8b5cf6 0%, #a78bfa 100%)",
		Secondary: "linear-gradient(135deg, #6366f1 0%, #8b5cf6 100%)",
		Accent:    "linear-gradient(135deg, #c084fc 0%, #e879f9 100%)",
	}
)

// newTheme returns an inactive theme carrying the default tokens.
func newTheme(name string) *Theme {
	return &Theme{
		Name:             name,
		Colors:           datatypes.NewJSONType(DefaultColors),
		Fonts:            datatypes.NewJSONType(DefaultFonts),
		Effects:          datatypes.NewJSONType(DefaultEffects),
		Gradients:        datatypes.NewJSONType(DefaultGradients),
		EnableAnimations: true,
		ScrollAnimation:  "smooth",
	}
}

type ColorsInput struct {
	Primary             *string `json:"primary" form:"primary" validate:"omitempty,max=100"`
	Secondary           *string `json:"secondary" form:"secondary" validate:"omitempty,max=100"`
	Accent              *string `json:"accent" form:"accent" validate:"omitempty,max=100"`
	Background          *string `json:"background" form:"background" validate:"omitempty,max=100"`
	BackgroundSecondary *string `json:"backgroundSecondary" form:"backgroundSecondary" validate:"omitempty,max=100"`
	Text                *string `json:"text" form:"text" validate:"omitempty,max=100"`
	TextSecondary       *string `json:"textSecondary" form:"textSecondary" validate:"omitempty,max=100"`
	Border              *string `json:"border" form:"border" validate:"omitempty,max=100"`
	CardBackground      *string `json:"cardBackground" form:"cardBackground" validate:"omitempty,max=100"`
	CardHover           *string `json:"cardHover" form:"cardHover" validate:"omitempty,max=100"`
}

type FontsInput struct {
	Heading *string `json:"heading" form:"heading" validate:"omitempty,max=200"`
	Body    *string `json:"body" form:"body" validate:"omitempty,max=200"`
	Code    *string `json:"code" form:"code" validate:"omitempty,max=200"`
}

type EffectsInput struct {
	BorderRadius *string `json:"borderRadius" form:"borderRadius" validate:"omitempty,max=100"`
	Shadow       *string `json:"shadow" form:"shadow" validate:"omitempty,max=200"`
	ShadowHover  *string `json:"shadowHover" form:"shadowHover" validate:"omitempty,max=200"`
	GlowColor    *string `json:"glowColor" form:"glowColor" validate:"omitempty,max=100"`
}

type GradientsInput struct {
	Primary   *string `json:"primary" form:"primary" validate:"omitempty,max=300"`
	Secondary *string `json:"secondary" form:"secondary" validate:"omitempty,max=300"`
	Accent    *string `json:"accent" form:"accent" validate:"omitempty,max=300"`
}

// ThemeInput patches a theme. Multipart bodies address nested tokens with
// dotted keys such as colors.primary.
type ThemeInput struct {
	Name             *string         `json:"name" form:"name" validate:"omitempty,min=1,max=100"`
	Colors           *ColorsInput    `json:"colors" form:"colors"`
	Fonts            *FontsInput     `json:"fonts" form:"fonts"`
	Effects          *EffectsInput   `json:"effects" form:"effects"`
	Gradients        *GradientsInput `json:"gradients" form:"gradients"`
	EnableAnimations *bool           `json:"enableAnimations" form:"enableAnimations"`
	ScrollAnimation  *string         `json:"scrollAnimation" form:"scrollAnimation" validate:"omitempty,max=50"`
	FaviconURL       *string         `json:"faviconUrl" form:"faviconUrl" validate:"omitempty,url"`
	IsActive         *bool           `json:"isActive" form:"isActive"`
}
