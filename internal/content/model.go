package content

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record is the identity and timestamps every document carries.
type Record struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Ordered is a Record with the manual sort key used by list endpoints.
type Ordered struct {
	Record
	SortOrder int `gorm:"column:sort_order;not null;default:0;index" json:"order"`
}

// Single is a Record for singleton documents. The unique slot column keeps a
// second row from ever being inserted.
type Single struct {
	Record
	Slot int `gorm:"uniqueIndex;not null" json:"-"`
}

func (s *Single) BeforeCreate(tx *gorm.DB) error {
	s.Slot = 1
	return s.Record.BeforeCreate(tx)
}
