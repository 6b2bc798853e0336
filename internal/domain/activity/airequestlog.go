package activity

import (
	"time"

	"github.com/google/uuid"
)

// AIRequestLog records one AI-search request. Day is a UTC yyyy-mm-dd bucket
// used as the fallback rate-limit counter when Redis is unavailable.
type AIRequestLog struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_ai_request_user_day" json:"user_id"`
	TopicID uuid.UUID `gorm:"type:uuid;column:topic_id" json:"topic_id"`
	Query   string    `gorm:"not null;column:query;type:text" json:"query"`
	Day     string    `gorm:"not null;index:idx_ai_request_user_day;column:day" json:"day"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (AIRequestLog) TableName() string { return "ai_request_log" }
