package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/repos"
	"github.com/quizforge/quizforge-backend/internal/types"
)

// SubmittedAnswer is one question's selection within a submission.
type SubmittedAnswer struct {
	QuestionID        uuid.UUID
	SelectedAnswerIDs []uuid.UUID
}

type AttemptSummary struct {
	ID                uuid.UUID `json:"id"`
	AttemptNumber     int       `json:"attempt_number"`
	ScorePercent      float64   `json:"score_percent"`
	Passed            bool      `json:"passed"`
	RemainingAttempts int       `json:"remaining_attempts"`
}

type AttemptResult struct {
	Attempt AttemptSummary `json:"attempt"`
}

type AttemptService interface {
	// Submit grades a full answer set against the topic and persists the
	// attempt. Grading and persistence happen in one transaction; any
	// failure leaves no trace of the attempt.
	Submit(ctx context.Context, tx *gorm.DB, topicID uuid.UUID, answers []SubmittedAnswer) (*AttemptResult, error)
	ListForTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]*types.QuizAttempt, error)
}

type attemptService struct {
	db          *gorm.DB
	log         *logger.Logger
	topicRepo   repos.TopicRepo
	attemptRepo repos.QuizAttemptRepo
}

func NewAttemptService(
	db *gorm.DB,
	baseLog *logger.Logger,
	topicRepo repos.TopicRepo,
	attemptRepo repos.QuizAttemptRepo,
) AttemptService {
	serviceLog := baseLog.With("service", "AttemptService")
	return &attemptService{
		db:          db,
		log:         serviceLog,
		topicRepo:   topicRepo,
		attemptRepo: attemptRepo,
	}
}

func (s *attemptService) Submit(ctx context.Context, tx *gorm.DB, topicID uuid.UUID, answers []SubmittedAnswer) (*AttemptResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	var result *AttemptResult
	// The quota check runs inside the same transaction as the insert, and
	// the unique (topic_id, attempt_number) index backstops concurrent
	// submissions racing past the count.
	err := transaction.Transaction(func(innerTx *gorm.DB) error {
		topic, err := s.topicRepo.GetByIDWithQuestions(ctx, innerTx, topicID)
		if err != nil {
			return fmt.Errorf("load topic: %w", err)
		}
		if topic == nil {
			return apierr.NotFound("topic not found")
		}

		priorCount, err := s.attemptRepo.CountByTopicID(ctx, innerTx, topicID)
		if err != nil {
			return fmt.Errorf("count attempts: %w", err)
		}
		if priorCount >= types.MaxAttemptsPerTopic {
			return apierr.QuotaExceeded("no attempts remaining for this topic")
		}
		attemptNumber := int(priorCount) + 1

		evaluations, correctCount, err := gradeSubmission(topic, answers)
		if err != nil {
			return err
		}

		total := len(topic.Questions)
		score := roundScore(float64(correctCount) / float64(total) * 100)
		passed := score >= types.PassThresholdPercent

		now := time.Now()
		attempt := &types.QuizAttempt{
			ID:            uuid.New(),
			TopicID:       topicID,
			AttemptNumber: attemptNumber,
			ScorePercent:  score,
			Passed:        passed,
			CreatedAt:     now,
		}
		if _, err := s.attemptRepo.Create(ctx, innerTx, attempt); err != nil {
			return fmt.Errorf("create attempt: %w", err)
		}

		rows := make([]*types.QuizAttemptAnswer, 0, len(evaluations))
		for _, ev := range evaluations {
			rows = append(rows, &types.QuizAttemptAnswer{
				ID:                uuid.New(),
				AttemptID:         attempt.ID,
				QuestionID:        ev.questionID,
				SelectedAnswerIDs: encodeAnswerIDs(ev.selected),
				IsCorrect:         ev.isCorrect,
				CreatedAt:         now,
			})
		}
		if _, err := s.attemptRepo.CreateAnswers(ctx, innerTx, rows); err != nil {
			return fmt.Errorf("create attempt answers: %w", err)
		}

		result = &AttemptResult{
			Attempt: AttemptSummary{
				ID:                attempt.ID,
				AttemptNumber:     attempt.AttemptNumber,
				ScorePercent:      attempt.ScorePercent,
				Passed:            attempt.Passed,
				RemainingAttempts: types.MaxAttemptsPerTopic - attempt.AttemptNumber,
			},
		}
		return nil
	})
	if err != nil {
		if apierr.From(err).Status >= 500 {
			s.log.Error("Submit failed", "error", err, "topic_id", topicID)
		}
		return nil, err
	}
	return result, nil
}

func (s *attemptService) ListForTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]*types.QuizAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = s.db
	}

	topics, err := s.topicRepo.GetByIDs(ctx, transaction, []uuid.UUID{topicID})
	if err != nil {
		return nil, fmt.Errorf("load topic: %w", err)
	}
	if len(topics) == 0 {
		return nil, apierr.NotFound("topic not found")
	}

	attempts, err := s.attemptRepo.GetByTopicIDs(ctx, transaction, []uuid.UUID{topicID})
	if err != nil {
		s.log.Error("ListForTopic failed", "error", err, "topic_id", topicID)
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return attempts, nil
}

type evaluation struct {
	questionID uuid.UUID
	selected   []uuid.UUID
	isCorrect  bool
}

// gradeSubmission checks completeness and grades every topic question
// exactly once. It is pure: same topic and selections always yield the
// same evaluations.
func gradeSubmission(topic *types.Topic, answers []SubmittedAnswer) ([]evaluation, int, error) {
	known := make(map[uuid.UUID]*types.Question, len(topic.Questions))
	for _, q := range topic.Questions {
		known[q.ID] = q
	}

	selectedByQuestion := make(map[uuid.UUID][]uuid.UUID, len(answers))
	for _, a := range answers {
		if _, ok := known[a.QuestionID]; !ok {
			return nil, 0, apierr.InvalidState("question %s does not belong to this topic", a.QuestionID)
		}
		selectedByQuestion[a.QuestionID] = a.SelectedAnswerIDs
	}

	var missing []string
	for _, q := range topic.Questions {
		if _, ok := selectedByQuestion[q.ID]; !ok {
			missing = append(missing, q.ID.String())
		}
	}
	if len(missing) > 0 {
		return nil, 0, apierr.InvalidState("all questions must be answered; missing: %s", strings.Join(missing, ", "))
	}

	evaluations := make([]evaluation, 0, len(topic.Questions))
	correctCount := 0
	for _, q := range topic.Questions {
		selected := selectedByQuestion[q.ID]
		isCorrect, err := gradeQuestion(q, selected)
		if err != nil {
			return nil, 0, err
		}
		if isCorrect {
			correctCount++
		}
		evaluations = append(evaluations, evaluation{
			questionID: q.ID,
			selected:   selected,
			isCorrect:  isCorrect,
		})
	}
	return evaluations, correctCount, nil
}

// gradeQuestion grades one question. Single-choice: exactly one
// selection matching the unique correct answer. Multiple-choice: the
// selected set equals the correct set, order- and duplicate-insensitive.
func gradeQuestion(q *types.Question, selected []uuid.UUID) (bool, error) {
	valid := make(map[uuid.UUID]bool, len(q.Answers))
	for _, a := range q.Answers {
		valid[a.ID] = true
	}
	for _, id := range selected {
		if !valid[id] {
			return false, apierr.InvalidState("answer %s does not belong to question %q", id, q.Text)
		}
	}

	correctIDs := q.CorrectAnswerIDs()
	if q.Type == types.QuestionTypeSingle {
		return len(selected) == 1 && len(correctIDs) == 1 && selected[0] == correctIDs[0], nil
	}
	return uuidSetEqual(selected, correctIDs), nil
}

func uuidSetEqual(a, b []uuid.UUID) bool {
	setA := make(map[uuid.UUID]bool, len(a))
	for _, id := range a {
		setA[id] = true
	}
	setB := make(map[uuid.UUID]bool, len(b))
	for _, id := range b {
		setB[id] = true
	}
	if len(setA) != len(setB) {
		return false
	}
	for id := range setA {
		if !setB[id] {
			return false
		}
	}
	return true
}

func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}

func encodeAnswerIDs(ids []uuid.UUID) datatypes.JSON {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}
