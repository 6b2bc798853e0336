package activity

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a user's 1-5 rating of an item. At most one row exists per
// (user, item) pair; writes go through an upsert keyed on that pair. Absence
// of a row means "not rated"; there is no zero state.
type Rating struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_user_item" json:"user_id"`
	ItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_user_item;index" json:"item_id"`
	Rating int       `gorm:"not null;column:rating" json:"rating"`
	Note   string    `gorm:"column:note;type:text" json:"note,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Rating) TableName() string { return "rating" }
