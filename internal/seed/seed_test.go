package seed

import (
	"context"
	"reflect"
	"testing"

	"github.com/quizforge/quizforge-backend/internal/repos"
	"github.com/quizforge/quizforge-backend/internal/repos/testutil"
	"github.com/quizforge/quizforge-backend/internal/services"
)

func newTestImporter(t *testing.T) (*Importer, services.TopicService) {
	t.Helper()

	gdb := testutil.SQLiteDB(t)
	log := testutil.Logger(t)

	topicRepo := repos.NewTopicRepo(gdb, log)
	questionRepo := repos.NewQuestionRepo(gdb, log)
	answerRepo := repos.NewAnswerRepo(gdb, log)
	attemptRepo := repos.NewQuizAttemptRepo(gdb, log)

	topicService := services.NewTopicService(gdb, log, topicRepo, questionRepo, answerRepo, attemptRepo)
	questionService := services.NewQuestionService(gdb, log, topicRepo, questionRepo, answerRepo, attemptRepo)

	return NewImporter(gdb, log, topicService, questionService), topicService
}

func TestDeriveTags(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"language_marker", "[BR] Historia do Brasil", []string{"BR"}},
		{"language_and_category", "[EN] University Admission Test", []string{"EN", "University"}},
		{"category_only", "Work Safety Basics", []string{"Work"}},
		{"spanish_keyword", "Seguridad en el Trabajo", []string{"Work"}},
		{"on_demand_with_space", "On Demand Refreshers", []string{"Ondemand"}},
		{"no_markers", "Algebra", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveTags(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("DeriveTags(%q)=%v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestImportSkipsDuplicateSlugs(t *testing.T) {
	importer, topicService := newTestImporter(t)
	ctx := context.Background()

	doc := &Document{
		Topics: []TopicSpec{
			{
				Name: "Física I",
				Questions: []QuestionSpec{
					{
						Text: "speed of light?",
						Type: "single",
						Answers: []AnswerSpec{
							{Text: "299792458 m/s", IsCorrect: true},
							{Text: "150000 km/s"},
						},
					},
				},
			},
			// Distinct name, same derived slug as the first entry.
			{
				Name: "FISICA   I!!",
				Questions: []QuestionSpec{
					{
						Text: "should never land",
						Type: "single",
						Answers: []AnswerSpec{
							{Text: "a", IsCorrect: true},
							{Text: "b"},
						},
					},
				},
			},
			{
				Name: "Química",
				Questions: []QuestionSpec{
					{
						Text: "symbol for gold?",
						Type: "single",
						Answers: []AnswerSpec{
							{Text: "Au", IsCorrect: true},
							{Text: "Ag"},
							{Text: "Go"},
						},
					},
				},
			},
		},
	}

	result, err := importer.Import(ctx, doc, make(map[string]bool))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.TopicsCreated != 2 || result.TopicsSkipped != 1 || result.QuestionsCreated != 2 {
		t.Fatalf("result=%+v, want 2 created / 1 skipped / 2 questions", result)
	}

	summaries, err := topicService.List(ctx, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("topics=%d, want 2", len(summaries))
	}
	for _, s := range summaries {
		if s.QuestionCount != 1 {
			t.Fatalf("topic %q has %d questions, want 1", s.Name, s.QuestionCount)
		}
	}
}

func TestImportFailsOnInvalidQuestion(t *testing.T) {
	importer, _ := newTestImporter(t)

	doc := &Document{
		Topics: []TopicSpec{
			{
				Name: "Broken",
				Questions: []QuestionSpec{
					{
						Text:    "single answer only",
						Type:    "single",
						Answers: []AnswerSpec{{Text: "alone", IsCorrect: true}},
					},
				},
			},
		},
	}

	result, err := importer.Import(context.Background(), doc, make(map[string]bool))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if result.QuestionsCreated != 0 {
		t.Fatalf("questions_created=%d, want 0", result.QuestionsCreated)
	}
}
