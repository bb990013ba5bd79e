package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/types"
)

func TestValidateAnswerSet(t *testing.T) {
	cases := []struct {
		name         string
		questionType string
		answers      []AnswerInput
		wantErr      bool
	}{
		{
			name:         "single_ok",
			questionType: types.QuestionTypeSingle,
			answers:      []AnswerInput{{Text: "a", IsCorrect: true}, {Text: "b"}},
			wantErr:      false,
		},
		{
			name:         "too_few_answers",
			questionType: types.QuestionTypeSingle,
			answers:      []AnswerInput{{Text: "a", IsCorrect: true}},
			wantErr:      true,
		},
		{
			name:         "no_correct_answer",
			questionType: types.QuestionTypeMultiple,
			answers:      []AnswerInput{{Text: "a"}, {Text: "b"}},
			wantErr:      true,
		},
		{
			name:         "single_with_two_correct",
			questionType: types.QuestionTypeSingle,
			answers:      []AnswerInput{{Text: "a", IsCorrect: true}, {Text: "b", IsCorrect: true}},
			wantErr:      true,
		},
		{
			name:         "multiple_with_two_correct",
			questionType: types.QuestionTypeMultiple,
			answers:      []AnswerInput{{Text: "a", IsCorrect: true}, {Text: "b", IsCorrect: true}},
			wantErr:      false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateAnswerSet(tc.questionType, tc.answers)
			if (err != nil) != tc.wantErr {
				t.Fatalf("validateAnswerSet err=%v, wantErr=%v", err, tc.wantErr)
			}
			if err != nil {
				if ae := apierr.From(err); ae.Status != http.StatusBadRequest {
					t.Fatalf("status=%d, want 400", ae.Status)
				}
			}
		})
	}
}

func TestCreateQuestionUnknownTopic(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.questions.Create(context.Background(), nil, uuid.New(), "q", types.QuestionTypeSingle, []AnswerInput{
		{Text: "a", IsCorrect: true},
		{Text: "b"},
	})
	if err == nil {
		t.Fatal("expected not found")
	}
	if ae := apierr.From(err); ae.Status != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", ae.Status)
	}
}

func TestUpdateQuestionTypeSwitch(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	topic, err := env.topics.CreateOrGet(ctx, nil, "Switching", nil)
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	q, err := env.questions.Create(ctx, nil, topic.ID, "pick all", types.QuestionTypeMultiple, []AnswerInput{
		{Text: "a", IsCorrect: true},
		{Text: "b", IsCorrect: true},
		{Text: "c"},
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}

	// Two correct answers cannot become a single-choice question.
	single := types.QuestionTypeSingle
	_, err = env.questions.Update(ctx, nil, topic.ID, q.ID, QuestionUpdate{Type: &single})
	if err == nil {
		t.Fatal("expected invalid state switching to single with two correct answers")
	}
	if ae := apierr.From(err); ae.Code != apierr.CodeInvalidState {
		t.Fatalf("code=%q, want %q", ae.Code, apierr.CodeInvalidState)
	}

	// Replacing the answers alongside the switch is allowed.
	updated, err := env.questions.Update(ctx, nil, topic.ID, q.ID, QuestionUpdate{
		Type: &single,
		Answers: []AnswerInput{
			{Text: "only", IsCorrect: true},
			{Text: "other"},
		},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Type != types.QuestionTypeSingle || len(updated.Answers) != 2 {
		t.Fatalf("updated=%+v, want single with 2 answers", updated)
	}
}

func TestUpdateQuestionAnswerReplacementIsAtomic(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	topic, err := env.topics.CreateOrGet(ctx, nil, "Replacement", nil)
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	q, err := env.questions.Create(ctx, nil, topic.ID, "q", types.QuestionTypeSingle, []AnswerInput{
		{Text: "old right", IsCorrect: true},
		{Text: "old wrong"},
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}

	// An invalid replacement set is rejected before anything is touched.
	_, err = env.questions.Update(ctx, nil, topic.ID, q.ID, QuestionUpdate{
		Answers: []AnswerInput{{Text: "lonely", IsCorrect: true}},
	})
	if err == nil {
		t.Fatal("expected invalid state for one-answer replacement")
	}

	kept, err := env.questions.ListForTopic(ctx, nil, topic.ID)
	if err != nil {
		t.Fatalf("ListForTopic: %v", err)
	}
	if len(kept) != 1 || len(kept[0].Answers) != 2 {
		t.Fatalf("old answer set was disturbed: %+v", kept)
	}
	if kept[0].Answers[0].Text != "old right" && kept[0].Answers[1].Text != "old right" {
		t.Fatal("old answers should survive a rejected replacement")
	}

	// A valid replacement swaps the whole set.
	updated, err := env.questions.Update(ctx, nil, topic.ID, q.ID, QuestionUpdate{
		Answers: []AnswerInput{
			{Text: "new right", IsCorrect: true},
			{Text: "new wrong 1"},
			{Text: "new wrong 2"},
		},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.Answers) != 3 {
		t.Fatalf("answers=%d, want 3", len(updated.Answers))
	}

	reloaded, err := env.questions.ListForTopic(ctx, nil, topic.ID)
	if err != nil {
		t.Fatalf("ListForTopic: %v", err)
	}
	if len(reloaded[0].Answers) != 3 {
		t.Fatalf("persisted answers=%d, want 3", len(reloaded[0].Answers))
	}
	for _, a := range reloaded[0].Answers {
		if a.Text == "old right" || a.Text == "old wrong" {
			t.Fatalf("old answer %q survived replacement", a.Text)
		}
	}
}

func TestDeleteQuestionCascades(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	topicID, submissions := seedScoredTopic(t, env, "Delete Cascade", 2, 2)
	if _, err := env.attempts.Submit(ctx, nil, topicID, submissions); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := env.questions.Delete(ctx, nil, topicID, submissions[0].QuestionID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var answerCount int64
	if err := env.db.Model(&types.Answer{}).Where("question_id = ?", submissions[0].QuestionID).Count(&answerCount).Error; err != nil {
		t.Fatalf("count answers: %v", err)
	}
	if answerCount != 0 {
		t.Fatalf("answers left=%d, want 0", answerCount)
	}

	var attemptAnswerCount int64
	if err := env.db.Model(&types.QuizAttemptAnswer{}).Where("question_id = ?", submissions[0].QuestionID).Count(&attemptAnswerCount).Error; err != nil {
		t.Fatalf("count attempt answers: %v", err)
	}
	if attemptAnswerCount != 0 {
		t.Fatalf("attempt answers left=%d, want 0", attemptAnswerCount)
	}
}

func TestUpdateQuestionWrongTopic(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, submissions := seedScoredTopic(t, env, "Owner", 1, 1)
	other, err := env.topics.CreateOrGet(ctx, nil, "Other", nil)
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}

	text := "renamed"
	_, err = env.questions.Update(ctx, nil, other.ID, submissions[0].QuestionID, QuestionUpdate{Text: &text})
	if err == nil {
		t.Fatal("expected not found updating through the wrong topic")
	}
	if ae := apierr.From(err); ae.Status != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", ae.Status)
	}
}
