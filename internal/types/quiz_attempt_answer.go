package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizAttemptAnswer records one graded question within an attempt.
// Rows are written once at grading time and never mutated.
type QuizAttemptAnswer struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AttemptID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"attempt_id"`
	Attempt           *QuizAttempt   `gorm:"constraint:OnDelete:CASCADE;foreignKey:AttemptID;references:ID" json:"-"`
	QuestionID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"question_id"`
	Question          *Question      `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	SelectedAnswerIDs datatypes.JSON `gorm:"column:selected_answer_ids;type:jsonb" json:"selected_answer_ids"`
	IsCorrect         bool           `gorm:"column:is_correct;not null" json:"is_correct"`
	CreatedAt         time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (QuizAttemptAnswer) TableName() string { return "quiz_attempt_answer" }
