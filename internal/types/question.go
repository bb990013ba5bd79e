package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	QuestionTypeSingle   = "single"
	QuestionTypeMultiple = "multiple"
)

// ValidQuestionType reports whether t is one of the supported question types.
func ValidQuestionType(t string) bool {
	return t == QuestionTypeSingle || t == QuestionTypeMultiple
}

type Question struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TopicID   uuid.UUID `gorm:"type:uuid;not null;index" json:"topic_id"`
	Topic     *Topic    `gorm:"constraint:OnDelete:CASCADE;foreignKey:TopicID;references:ID" json:"-"`
	Text      string    `gorm:"column:text;not null" json:"text"`
	Type      string    `gorm:"column:type;not null" json:"type"`
	Answers   []*Answer `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"answers,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Question) TableName() string { return "question" }

// CorrectAnswerIDs returns the ids of the answers flagged correct.
func (q *Question) CorrectAnswerIDs() []uuid.UUID {
	var ids []uuid.UUID
	for _, a := range q.Answers {
		if a.IsCorrect {
			ids = append(ids, a.ID)
		}
	}
	return ids
}
