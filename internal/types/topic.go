package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Topic struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string         `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Slug      string         `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Tags      datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags"`
	Questions []*Question    `gorm:"constraint:OnDelete:CASCADE;foreignKey:TopicID;references:ID" json:"questions,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Topic) TableName() string { return "topic" }
