package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge-backend/internal/repos/testutil"
	"github.com/quizforge/quizforge-backend/internal/types"
)

func TestTopicRepoRoundTrip(t *testing.T) {
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()

	topicRepo := NewTopicRepo(gdb, log)
	questionRepo := NewQuestionRepo(gdb, log)
	answerRepo := NewAnswerRepo(gdb, log)

	topic := testutil.SeedTopic(t, ctx, tx, "Repo Round Trip "+uuid.NewString(), "repo-round-trip-"+uuid.NewString())
	testutil.SeedQuestion(t, ctx, tx, topic.ID, "q", types.QuestionTypeSingle, []string{"right", "wrong"}, []int{0})

	t.Run("get_by_name_or_slug", func(t *testing.T) {
		got, err := topicRepo.GetByNameOrSlug(ctx, tx, topic.Name, "no-such-slug")
		if err != nil {
			t.Fatalf("GetByNameOrSlug: %v", err)
		}
		if got == nil || got.ID != topic.ID {
			t.Fatalf("got=%+v, want topic %s", got, topic.ID)
		}

		got, err = topicRepo.GetByNameOrSlug(ctx, tx, "no such name", topic.Slug)
		if err != nil {
			t.Fatalf("GetByNameOrSlug: %v", err)
		}
		if got == nil || got.ID != topic.ID {
			t.Fatalf("got=%+v, want topic %s by slug", got, topic.ID)
		}

		got, err = topicRepo.GetByNameOrSlug(ctx, tx, "no such name", "no-such-slug")
		if err != nil {
			t.Fatalf("GetByNameOrSlug: %v", err)
		}
		if got != nil {
			t.Fatalf("got=%+v, want nil for a miss", got)
		}
	})

	t.Run("get_with_questions", func(t *testing.T) {
		got, err := topicRepo.GetByIDWithQuestions(ctx, tx, topic.ID)
		if err != nil {
			t.Fatalf("GetByIDWithQuestions: %v", err)
		}
		if got == nil || len(got.Questions) != 1 {
			t.Fatalf("got=%+v, want 1 preloaded question", got)
		}
		if len(got.Questions[0].Answers) != 2 {
			t.Fatalf("answers=%d, want 2 preloaded", len(got.Questions[0].Answers))
		}
	})

	t.Run("count_questions", func(t *testing.T) {
		counts, err := topicRepo.CountQuestions(ctx, tx, []uuid.UUID{topic.ID, uuid.New()})
		if err != nil {
			t.Fatalf("CountQuestions: %v", err)
		}
		if counts[topic.ID] != 1 {
			t.Fatalf("count=%d, want 1", counts[topic.ID])
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := answerRepo.FullDeleteByTopicIDs(ctx, tx, []uuid.UUID{topic.ID}); err != nil {
			t.Fatalf("delete answers: %v", err)
		}
		if err := questionRepo.FullDeleteByTopicIDs(ctx, tx, []uuid.UUID{topic.ID}); err != nil {
			t.Fatalf("delete questions: %v", err)
		}
		if err := topicRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{topic.ID}); err != nil {
			t.Fatalf("FullDeleteByIDs: %v", err)
		}
		got, err := topicRepo.GetByIDs(ctx, tx, []uuid.UUID{topic.ID})
		if err != nil {
			t.Fatalf("GetByIDs: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("topics left=%d, want 0", len(got))
		}
	})
}
