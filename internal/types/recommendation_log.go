package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TriggerAutomatic = "automatic"
	TriggerManual    = "manual"
)

// RecommendationLog is append-only: one row per recommendation computation,
// carrying the full ranked list. The scoring path never reads it back.
type RecommendationLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Entries   datatypes.JSON `gorm:"type:jsonb;column:entries" json:"entries"`
	Trigger   string         `gorm:"column:trigger;not null;default:'automatic'" json:"trigger"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (RecommendationLog) TableName() string { return "recommendation_log" }

// RecommendationLogEntry is the shape of one element of the Entries column.
type RecommendationLogEntry struct {
	ItemID uuid.UUID `json:"item_id"`
	Score  float64   `json:"score"`
	Reason string    `json:"reason"`
}
