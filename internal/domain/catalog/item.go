package catalog

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Item provenance values.
const (
	ProvenanceSeed          = "seed"
	ProvenanceAIGenerated   = "ai_generated"
	ProvenanceUserSubmitted = "user_submitted"
)

type Item struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TopicID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"topic_id"`
	Name        string         `gorm:"not null;index;column:name" json:"name"`
	Slug        string         `gorm:"not null;index;column:slug" json:"slug"`
	Description string         `gorm:"column:description;type:text" json:"description,omitempty"`
	// Metadata carries topic-specific fields (year, director, genre,
	// release_date, ...) as a free-form JSON object.
	Metadata     datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	ImageURL     string         `gorm:"column:image_url" json:"image_url,omitempty"`
	Provenance   string         `gorm:"not null;default:'seed';column:provenance" json:"provenance"`
	AIConfidence *float64       `gorm:"column:ai_confidence" json:"ai_confidence,omitempty"`
	CreatedBy    *uuid.UUID     `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Item) TableName() string { return "item" }

// MetadataMap decodes the metadata column. Nil or invalid JSON yields an
// empty map.
func (i *Item) MetadataMap() map[string]any {
	out := map[string]any{}
	if len(i.Metadata) == 0 {
		return out
	}
	if err := json.Unmarshal(i.Metadata, &out); err != nil {
		return map[string]any{}
	}
	return out
}

// ReleaseYear resolves the item's release year from metadata, preferring an
// explicit release_date over a bare year field. Returns 0 when neither is
// usable.
func (i *Item) ReleaseYear() int {
	meta := i.MetadataMap()
	if raw, ok := meta["release_date"]; ok {
		if s, ok := raw.(string); ok && len(s) >= 4 {
			if y, err := strconv.Atoi(s[:4]); err == nil {
				return y
			}
		}
	}
	switch y := meta["year"].(type) {
	case float64:
		return int(y)
	case string:
		if n, err := strconv.Atoi(y); err == nil {
			return n
		}
	}
	return 0
}
