package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"

	ItemSourceSystem    = "system"
	ItemSourceUser      = "user"
	ItemSourceGenerated = "generated"

	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
	VisibilityCurated = "curated"
)

type LearningItem struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title           string         `gorm:"not null;column:title" json:"title"`
	Kind            string         `gorm:"not null;column:kind;default:'lesson'" json:"kind"`
	Tags            datatypes.JSON `gorm:"type:jsonb;column:tags" json:"tags"`
	PrereqTags      datatypes.JSON `gorm:"type:jsonb;column:prereq_tags" json:"prereq_tags"`
	Difficulty      string         `gorm:"not null;column:difficulty;default:'beginner';index" json:"difficulty"`
	Visits          int            `gorm:"not null;column:visits;default:0" json:"visits"`
	Rating          float64        `gorm:"not null;column:rating;default:0" json:"rating"`
	Source          string         `gorm:"not null;column:source;default:'system';index" json:"source"`
	Visibility      string         `gorm:"not null;column:visibility;default:'public';index" json:"visibility"`
	PersonalizedFor datatypes.JSON `gorm:"type:jsonb;column:personalized_for" json:"personalized_for,omitempty"`
	OwnerID         *uuid.UUID     `gorm:"type:uuid;column:owner_id;index" json:"owner_id,omitempty"`
	Owner           *User          `gorm:"constraint:OnDelete:SET NULL;foreignKey:OwnerID;references:ID" json:"owner,omitempty"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LearningItem) TableName() string { return "learning_item" }

// TagList decodes the jsonb tags column. A null or malformed column decodes
// to an empty list rather than an error; tag order is preserved.
func (li *LearningItem) TagList() []string {
	return decodeStringArray(li.Tags)
}

func (li *LearningItem) PrereqTagList() []string {
	return decodeStringArray(li.PrereqTags)
}

// PersonalizedForIDs decodes the personalized_for jsonb column, dropping
// entries that do not parse as UUIDs.
func (li *LearningItem) PersonalizedForIDs() []uuid.UUID {
	raw := decodeStringArray(li.PersonalizedFor)
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func decodeStringArray(col datatypes.JSON) []string {
	if len(col) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(col, &out); err != nil {
		return nil
	}
	return out
}
