package gallery

import (
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"gorm.io/datatypes"
)

type Image struct {
	content.Ordered
	Title        string                      `gorm:"size:200;not null" json:"title"`
	Description  string                      `gorm:"size:500" json:"description"`
	ImageURL     string                      `gorm:"column:image_url;not null" json:"imageUrl"`
	CloudinaryID string                      `gorm:"column:cloudinary_id;not null" json:"cloudinaryId"`
	Category     string                      `gorm:"size:100;index" json:"category"`
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	Width        int                         `json:"width,omitempty"`
	Height       int                         `json:"height,omitempty"`
}

func (Image) TableName() string { return "gallery_images" }

type ImageInput struct {
	Title       *string  `json:"title" form:"title" validate:"required,min=1,max=200"`
	Description *string  `json:"description" form:"description" validate:"omitempty,max=500"`
	Category    *string  `json:"category" form:"category" validate:"omitempty,max=100"`
	Tags        []string `json:"tags" form:"tags" validate:"omitempty,dive,max=50"`
	Order       *int     `json:"order" form:"order"`
}
