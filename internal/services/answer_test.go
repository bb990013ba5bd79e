package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/types"
)

func seedMutabilityQuestion(t *testing.T, env *testEnv, questionType string, correct []bool) *types.Question {
	t.Helper()
	ctx := context.Background()

	topic, err := env.topics.CreateOrGet(ctx, nil, "Mutability "+uuid.NewString(), nil)
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}

	inputs := make([]AnswerInput, 0, len(correct))
	for i, c := range correct {
		inputs = append(inputs, AnswerInput{Text: string(rune('a' + i)), IsCorrect: c})
	}
	q, err := env.questions.Create(ctx, nil, topic.ID, "q", questionType, inputs)
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	return q
}

func TestUpdateAnswerCorrectness(t *testing.T) {
	boolPtr := func(b bool) *bool { return &b }

	cases := []struct {
		name         string
		questionType string
		correct      []bool
		target       int // index into the answer set
		newValue     bool
		wantErr      bool
	}{
		{
			name:         "single_mark_second_correct_rejected",
			questionType: types.QuestionTypeSingle,
			correct:      []bool{true, false},
			target:       1,
			newValue:     true,
			wantErr:      true,
		},
		{
			name:         "single_unmark_sole_correct_rejected",
			questionType: types.QuestionTypeSingle,
			correct:      []bool{true, false},
			target:       0,
			newValue:     false,
			wantErr:      true,
		},
		{
			name:         "multiple_unmark_last_correct_rejected",
			questionType: types.QuestionTypeMultiple,
			correct:      []bool{true, false, false},
			target:       0,
			newValue:     false,
			wantErr:      true,
		},
		{
			name:         "multiple_unmark_one_of_two_allowed",
			questionType: types.QuestionTypeMultiple,
			correct:      []bool{true, true, false},
			target:       0,
			newValue:     false,
			wantErr:      false,
		},
		{
			name:         "multiple_mark_additional_allowed",
			questionType: types.QuestionTypeMultiple,
			correct:      []bool{true, false},
			target:       1,
			newValue:     true,
			wantErr:      false,
		},
		{
			name:         "noop_remark_correct_allowed",
			questionType: types.QuestionTypeSingle,
			correct:      []bool{true, false},
			target:       0,
			newValue:     true,
			wantErr:      false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			q := seedMutabilityQuestion(t, env, tc.questionType, tc.correct)
			target := q.Answers[tc.target]

			updated, err := env.answers.Update(context.Background(), nil, target.ID, nil, boolPtr(tc.newValue))
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected invalid state")
				}
				ae := apierr.From(err)
				if ae.Status != http.StatusBadRequest || ae.Code != apierr.CodeInvalidState {
					t.Fatalf("got status=%d code=%q, want 400 %q", ae.Status, ae.Code, apierr.CodeInvalidState)
				}
				// The stored flag must be untouched.
				reloaded, loadErr := env.questions.ListForTopic(context.Background(), nil, q.TopicID)
				if loadErr != nil {
					t.Fatalf("ListForTopic: %v", loadErr)
				}
				for _, a := range reloaded[0].Answers {
					if a.ID == target.ID && a.IsCorrect != target.IsCorrect {
						t.Fatal("rejected mutation changed the stored answer")
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("Update: %v", err)
			}
			if updated.IsCorrect != tc.newValue {
				t.Fatalf("is_correct=%v, want %v", updated.IsCorrect, tc.newValue)
			}
		})
	}
}

func TestUpdateAnswerText(t *testing.T) {
	env := newTestEnv(t, nil)
	q := seedMutabilityQuestion(t, env, types.QuestionTypeSingle, []bool{true, false})

	text := "rephrased"
	updated, err := env.answers.Update(context.Background(), nil, q.Answers[1].ID, &text, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Text != "rephrased" {
		t.Fatalf("text=%q, want %q", updated.Text, "rephrased")
	}
	if updated.IsCorrect {
		t.Fatal("text-only update flipped is_correct")
	}
}

func TestUpdateAnswerNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	text := "x"
	_, err := env.answers.Update(context.Background(), nil, uuid.New(), &text, nil)
	if err == nil {
		t.Fatal("expected not found")
	}
	if ae := apierr.From(err); ae.Status != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", ae.Status)
	}
}
