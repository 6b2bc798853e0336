package activity

import (
	"time"

	"github.com/google/uuid"
)

// WatchLaterEntry marks an item a user intends to get to. At most one entry
// exists per (user, item). Rating an item removes it from the client's
// watch-later set; the row itself is only deleted on explicit removal.
type WatchLaterEntry struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_watch_later_user_item" json:"user_id"`
	ItemID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_watch_later_user_item;index" json:"item_id"`
	TopicID  uuid.UUID `gorm:"type:uuid;not null;index" json:"topic_id"`
	Priority int       `gorm:"not null;default:0;column:priority" json:"priority"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (WatchLaterEntry) TableName() string { return "watch_later_entry" }
