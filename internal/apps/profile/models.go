package profile

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"gorm.io/datatypes"
)

type Stats struct {
	Experience string `json:"experience" validate:"max=50"`
	Projects   string `json:"projects" validate:"max=50"`
	Clients    string `json:"clients" validate:"max=50"`
	Awards     string `json:"awards" validate:"max=50"`
}

type Experience struct {
	Position         string   `json:"position" validate:"max=200"`
	Company          string   `json:"company" validate:"max=200"`
	Location         string   `json:"location" validate:"max=200"`
	StartDate        string   `json:"startDate" validate:"max=50"`
	EndDate          string   `json:"endDate" validate:"max=50"`
	Current          bool     `json:"current"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
}

type Education struct {
	Degree      string `json:"degree" validate:"max=200"`
	Institution string `json:"institution" validate:"max=200"`
	Location    string `json:"location" validate:"max=200"`
	StartDate   string `json:"startDate" validate:"max=50"`
	EndDate     string `json:"endDate" validate:"max=50"`
	Description string `json:"description"`
	GPA         string `json:"gpa,omitempty" validate:"max=20"`
}

type Skill struct {
	Name  string `json:"name" validate:"required,max=100"`
	Level int    `json:"level" validate:"gte=0,lte=100"`
}

type Language struct {
	Name        string `json:"name" validate:"required,max=100"`
	Proficiency string `json:"proficiency" validate:"max=100"`
}

type SocialLink struct {
	Platform string `json:"platform" validate:"required,max=50"`
	URL      string `json:"url" validate:"required,url"`
}

type Certification struct {
	Name         string `json:"name" validate:"required,max=200"`
	Issuer       string `json:"issuer" validate:"max=200"`
	Date         string `json:"date" validate:"max=50"`
	CredentialID string `json:"credentialId,omitempty" validate:"max=200"`
}

type Achievement struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"max=50"`
}

// Profile is the site owner's public profile. At most one row exists.
type Profile struct {
	content.Single
	Name               string                             `gorm:"size:200" json:"name"`
	Title              string                             `gorm:"size:200" json:"title"`
	Tagline            string                             `gorm:"size:300" json:"tagline"`
	Avatar             string                             `json:"avatar"`
	AvatarCloudinaryID string                             `gorm:"column:avatar_cloudinary_id" json:"avatarCloudinaryId"`
	Location           string                             `gorm:"size:200" json:"location"`
	Email              string                             `gorm:"size:255" json:"email"`
	Phone              string                             `gorm:"size:50" json:"phone"`
	Bio                string                             `gorm:"type:text" json:"bio"`
	About              string                             `gorm:"type:text" json:"about"`
	Stats              datatypes.JSONType[Stats]          `json:"stats"`
	Experience         datatypes.JSONSlice[Experience]    `json:"experience"`
	Education          datatypes.JSONSlice[Education]     `json:"education"`
	CoreSkills         datatypes.JSONSlice[Skill]         `json:"coreSkills"`
	Languages          datatypes.JSONSlice[Language]      `json:"languages"`
	Interests          datatypes.JSONSlice[string]        `json:"interests"`
	SocialLinks        datatypes.JSONSlice[SocialLink]    `json:"socialLinks"`
	Certifications     datatypes.JSONSlice[Certification] `json:"certifications"`
	Achievements       datatypes.JSONSlice[Achievement]   `json:"achievements"`
}

type StatsInput struct {
	Experience *string `json:"experience" validate:"omitempty,max=50"`
	Projects   *string `json:"projects" validate:"omitempty,max=50"`
	Clients    *string `json:"clients" validate:"omitempty,max=50"`
	Awards     *string `json:"awards" validate:"omitempty,max=50"`
}

// ProfileInput patches the profile. Lists replace the stored list whole.
type ProfileInput struct {
	Name     *string `json:"name" form:"name" validate:"omitempty,max=200"`
	Title    *string `json:"title" form:"title" validate:"omitempty,max=200"`
	Tagline  *string `json:"tagline" form:"tagline" validate:"omitempty,max=300"`
	Avatar   *string `json:"avatar" form:"avatar" validate:"omitempty,url"`
	Location *string `json:"location" form:"location" validate:"omitempty,max=200"`
	Email    *string `json:"email" form:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" form:"phone" validate:"omitempty,max=50"`
	Bio      *string `json:"bio" form:"bio"`
	About    *string `json:"about" form:"about"`

	Stats          *StatsInput     `json:"stats" form:"-"`
	Experience     []Experience    `json:"experience" form:"-" validate:"omitempty,dive"`
	Education      []Education     `json:"education" form:"-" validate:"omitempty,dive"`
	CoreSkills     []Skill         `json:"coreSkills" form:"-" validate:"omitempty,dive"`
	Languages      []Language      `json:"languages" form:"-" validate:"omitempty,dive"`
	Interests      []string        `json:"interests" form:"-" validate:"omitempty,dive,max=100"`
	SocialLinks    []SocialLink    `json:"socialLinks" form:"-" validate:"omitempty,dive"`
	Certifications []Certification `json:"certifications" form:"-" validate:"omitempty,dive"`
	Achievements   []Achievement   `json:"achievements" form:"-" validate:"omitempty,dive"`
}

// DecodeForm reads the structured fields, which multipart bodies carry as JSON strings.
func (in *ProfileInput) DecodeForm(values map[string][]string) error {
	if err := content.DecodeJSONFields(values, map[string]any{
		"stats":          &in.Stats,
		"experience":     &in.Experience,
		"education":      &in.Education,
		"coreSkills":     &in.CoreSkills,
		"languages":      &in.Languages,
		"socialLinks":    &in.SocialLinks,
		"certifications": &in.Certifications,
		"achievements":   &in.Achievements,
	}); err != nil {
		return err
	}

	// interests arrives either as one JSON array or as repeated plain values.
	raw := values["interests"]
	if len(raw) == 1 && strings.HasPrefix(strings.TrimSpace(raw[0]), "[") {
		return content.DecodeJSONFields(values, map[string]any{"interests": &in.Interests})
	}
	if len(raw) > 0 {
		in.Interests = raw
	}
	return nil
}
