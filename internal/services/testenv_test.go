package services

import (
	"math/rand"
	"testing"

	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/repos"
	"github.com/quizforge/quizforge-backend/internal/repos/testutil"
)

type testEnv struct {
	db        *gorm.DB
	topics    TopicService
	questions QuestionService
	answers   AnswerService
	quiz      QuizService
	attempts  AttemptService
}

func newTestEnv(t *testing.T, rnd *rand.Rand) *testEnv {
	t.Helper()

	gdb := testutil.SQLiteDB(t)
	log := testutil.Logger(t)

	topicRepo := repos.NewTopicRepo(gdb, log)
	questionRepo := repos.NewQuestionRepo(gdb, log)
	answerRepo := repos.NewAnswerRepo(gdb, log)
	attemptRepo := repos.NewQuizAttemptRepo(gdb, log)

	return &testEnv{
		db:        gdb,
		topics:    NewTopicService(gdb, log, topicRepo, questionRepo, answerRepo, attemptRepo),
		questions: NewQuestionService(gdb, log, topicRepo, questionRepo, answerRepo, attemptRepo),
		answers:   NewAnswerService(gdb, log, answerRepo, questionRepo),
		quiz:      NewQuizService(gdb, log, topicRepo, rnd),
		attempts:  NewAttemptService(gdb, log, topicRepo, attemptRepo),
	}
}
