package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Topic is read-only reference data from the client's perspective; rows are
// created by seeding, never through the public API.
type Topic struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name          string    `gorm:"not null;column:name" json:"name"`
	Slug          string    `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
	Description   string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Icon          string    `gorm:"column:icon" json:"icon,omitempty"`
	CoverImageURL string    `gorm:"column:cover_image_url" json:"cover_image_url,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Topic) TableName() string { return "topic" }
