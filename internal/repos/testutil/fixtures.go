package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/types"
)

func SeedTopic(tb testing.TB, ctx context.Context, tx *gorm.DB, name, slug string) *types.Topic {
	tb.Helper()
	now := time.Now()
	t := &types.Topic{
		ID:        uuid.New(),
		Name:      name,
		Slug:      slug,
		Tags:      datatypes.JSON([]byte("[]")),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed topic: %v", err)
	}
	return t
}

// SeedQuestion creates a question plus its answers. correct marks which
// answer positions are flagged correct.
func SeedQuestion(tb testing.TB, ctx context.Context, tx *gorm.DB, topicID uuid.UUID, text, questionType string, answerTexts []string, correct []int) *types.Question {
	tb.Helper()
	now := time.Now()
	q := &types.Question{
		ID:        uuid.New(),
		TopicID:   topicID,
		Text:      text,
		Type:      questionType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed question: %v", err)
	}

	correctSet := make(map[int]bool, len(correct))
	for _, idx := range correct {
		correctSet[idx] = true
	}
	for i, answerText := range answerTexts {
		a := &types.Answer{
			ID:         uuid.New(),
			QuestionID: q.ID,
			Text:       answerText,
			IsCorrect:  correctSet[i],
			CreatedAt:  now.Add(time.Duration(i) * time.Millisecond),
			UpdatedAt:  now,
		}
		if err := tx.WithContext(ctx).Create(a).Error; err != nil {
			tb.Fatalf("seed answer: %v", err)
		}
		q.Answers = append(q.Answers, a)
	}
	return q
}
