package projects

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"gorm.io/datatypes"
)

const (
	StatusCompleted  = "completed"
	StatusInProgress = "in-progress"
	StatusPlanned    = "planned"
)

type Project struct {
	content.Ordered
	Title               string                      `gorm:"size:200;not null" json:"title"`
	Description         string                      `gorm:"size:200;not null" json:"description"`
	LongDescription     string                      `gorm:"type:text" json:"longDescription"`
	Images              datatypes.JSONSlice[string] `json:"images"`
	ImagesCloudinaryIDs datatypes.JSONSlice[string] `gorm:"column:images_cloudinary_ids" json:"imagesCloudinaryIds"`
	Technologies        datatypes.JSONSlice[string] `json:"technologies"`
	GithubURL           string                      `gorm:"column:github_url" json:"githubUrl"`
	LiveURL             string                      `gorm:"column:live_url" json:"liveUrl"`
	Featured            bool                        `gorm:"not null;index" json:"featured"`
	Category            string                      `gorm:"size:100;index" json:"category"`
	Status              string                      `gorm:"size:20;not null;index" json:"status"`
	StartDate           *time.Time                  `json:"startDate"`
	EndDate             *time.Time                  `json:"endDate"`
}

// ProjectInput is the create/update schema. Absent fields are nil.
type ProjectInput struct {
	Title           *string  `json:"title" form:"title" validate:"required,min=1,max=200"`
	Description     *string  `json:"description" form:"description" validate:"required,min=1,max=200"`
	LongDescription *string  `json:"longDescription" form:"longDescription" validate:"omitempty,max=2000"`
	Technologies    []string `json:"technologies" form:"technologies" validate:"required,min=1,dive,required"`
	GithubURL       *string  `json:"githubUrl" form:"githubUrl" validate:"omitempty,url"`
	LiveURL         *string  `json:"liveUrl" form:"liveUrl" validate:"omitempty,url"`
	Featured        *bool    `json:"featured" form:"featured"`
	Order           *int     `json:"order" form:"order"`
	Category        *string  `json:"category" form:"category" validate:"omitempty,max=100"`
	Status          *string  `json:"status" form:"status" validate:"omitempty,oneof=completed in-progress planned"`
	StartDate       *string  `json:"startDate" form:"startDate" validate:"omitempty,date"`
	EndDate         *string  `json:"endDate" form:"endDate" validate:"omitempty,date"`

	// RemoveImageIDs detaches and releases images on update.
	RemoveImageIDs []string `json:"removeImageIds" form:"removeImageIds"`
}
