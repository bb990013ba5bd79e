package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/repos"
)

type QuizTopic struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// QuizAnswer deliberately has no correctness field: the grading key
// never leaves the server.
type QuizAnswer struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

type QuizQuestion struct {
	ID      uuid.UUID    `json:"id"`
	Text    string       `json:"text"`
	Type    string       `json:"type"`
	Answers []QuizAnswer `json:"answers"`
}

type QuizView struct {
	Topic     QuizTopic      `json:"topic"`
	Questions []QuizQuestion `json:"questions"`
}

type QuizService interface {
	// BuildQuiz returns a freshly shuffled, key-stripped view of the
	// topic's questions. Every call reshuffles.
	BuildQuiz(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*QuizView, error)
}

type quizService struct {
	db        *gorm.DB
	log       *logger.Logger
	topicRepo repos.TopicRepo

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewQuizService builds a quiz assembler. rnd may be nil, in which case
// a time-seeded source is used; tests inject a fixed seed.
func NewQuizService(db *gorm.DB, baseLog *logger.Logger, topicRepo repos.TopicRepo, rnd *rand.Rand) QuizService {
	serviceLog := baseLog.With("service", "QuizService")
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &quizService{
		db:        db,
		log:       serviceLog,
		topicRepo: topicRepo,
		rnd:       rnd,
	}
}

func (s *quizService) BuildQuiz(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*QuizView, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	topic, err := s.topicRepo.GetByIDWithQuestions(ctx, transaction, topicID)
	if err != nil {
		s.log.Error("BuildQuiz failed", "error", err, "topic_id", topicID)
		return nil, err
	}
	if topic == nil {
		return nil, apierr.NotFound("topic not found")
	}
	if len(topic.Questions) == 0 {
		return nil, apierr.InvalidState("this topic has no questions")
	}

	questions := make([]QuizQuestion, 0, len(topic.Questions))
	for _, q := range topic.Questions {
		answers := make([]QuizAnswer, 0, len(q.Answers))
		for _, a := range q.Answers {
			answers = append(answers, QuizAnswer{ID: a.ID, Text: a.Text})
		}
		s.shuffle(len(answers), func(i, j int) {
			answers[i], answers[j] = answers[j], answers[i]
		})
		questions = append(questions, QuizQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Type:    q.Type,
			Answers: answers,
		})
	}
	s.shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	return &QuizView{
		Topic: QuizTopic{
			ID:   topic.ID,
			Name: topic.Name,
			Slug: topic.Slug,
		},
		Questions: questions,
	}, nil
}

// shuffle runs an unbiased Fisher-Yates permutation under the lock;
// rand.Rand itself is not safe for concurrent use.
func (s *quizService) shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rnd.Shuffle(n, swap)
}
