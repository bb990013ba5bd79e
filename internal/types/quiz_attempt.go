package types

import (
	"time"

	"github.com/google/uuid"
)

// MaxAttemptsPerTopic caps how many graded submissions a topic accepts.
const MaxAttemptsPerTopic = 3

// PassThresholdPercent is the minimum score considered a pass.
const PassThresholdPercent = 70.0

type QuizAttempt struct {
	ID            uuid.UUID            `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TopicID       uuid.UUID            `gorm:"type:uuid;not null;index;uniqueIndex:uq_quiz_attempt_topic_number,priority:1" json:"topic_id"`
	Topic         *Topic               `gorm:"constraint:OnDelete:CASCADE;foreignKey:TopicID;references:ID" json:"-"`
	AttemptNumber int                  `gorm:"column:attempt_number;not null;uniqueIndex:uq_quiz_attempt_topic_number,priority:2" json:"attempt_number"`
	ScorePercent  float64              `gorm:"column:score_percent;type:decimal(5,2);not null" json:"score_percent"`
	Passed        bool                 `gorm:"column:passed;not null;default:false" json:"passed"`
	Answers       []*QuizAttemptAnswer `gorm:"constraint:OnDelete:CASCADE;foreignKey:AttemptID;references:ID" json:"answers,omitempty"`
	CreatedAt     time.Time            `gorm:"not null;default:now()" json:"created_at"`
}

func (QuizAttempt) TableName() string { return "quiz_attempt" }
