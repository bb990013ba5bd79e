package db

import (
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/types"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Authoring
		// =========================
		&types.Topic{},
		&types.Question{},
		&types.Answer{},

		// =========================
		// Attempt history (append-only)
		// =========================
		&types.QuizAttempt{},
		&types.QuizAttemptAnswer{},
	)
}
