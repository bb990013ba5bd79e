package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/repos"
	"github.com/quizforge/quizforge-backend/internal/types"
)

// AnswerInput is one answer option supplied on question create/update.
type AnswerInput struct {
	Text      string
	IsCorrect bool
}

// QuestionUpdate carries a partial question mutation. A nil Answers
// keeps the existing answer set; a non-nil Answers replaces it whole.
type QuestionUpdate struct {
	Text    *string
	Type    *string
	Answers []AnswerInput
}

type QuestionService interface {
	Create(ctx context.Context, tx *gorm.DB, topicID uuid.UUID, text, questionType string, answers []AnswerInput) (*types.Question, error)
	ListForTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]*types.Question, error)
	Update(ctx context.Context, tx *gorm.DB, topicID, questionID uuid.UUID, upd QuestionUpdate) (*types.Question, error)
	Delete(ctx context.Context, tx *gorm.DB, topicID, questionID uuid.UUID) error
}

type questionService struct {
	db           *gorm.DB
	log          *logger.Logger
	topicRepo    repos.TopicRepo
	questionRepo repos.QuestionRepo
	answerRepo   repos.AnswerRepo
	attemptRepo  repos.QuizAttemptRepo
}

func NewQuestionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	topicRepo repos.TopicRepo,
	questionRepo repos.QuestionRepo,
	answerRepo repos.AnswerRepo,
	attemptRepo repos.QuizAttemptRepo,
) QuestionService {
	serviceLog := baseLog.With("service", "QuestionService")
	return &questionService{
		db:           db,
		log:          serviceLog,
		topicRepo:    topicRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		attemptRepo:  attemptRepo,
	}
}

// validateAnswerSet enforces the create-time invariant: at least two
// answers, at least one correct, and exactly one correct for
// single-choice questions.
func validateAnswerSet(questionType string, answers []AnswerInput) error {
	if len(answers) < 2 {
		return apierr.InvalidState("a question needs at least 2 answers")
	}
	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}
	if correct == 0 {
		return apierr.InvalidState("at least one answer must be marked correct")
	}
	if questionType == types.QuestionTypeSingle && correct != 1 {
		return apierr.InvalidState("single-choice questions must have exactly one correct answer")
	}
	return nil
}

func (qs *questionService) Create(ctx context.Context, tx *gorm.DB, topicID uuid.UUID, text, questionType string, answers []AnswerInput) (*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = qs.db
	}

	if !types.ValidQuestionType(questionType) {
		return nil, apierr.Validation("question type must be %q or %q", types.QuestionTypeSingle, types.QuestionTypeMultiple)
	}
	if err := validateAnswerSet(questionType, answers); err != nil {
		return nil, err
	}

	topics, err := qs.topicRepo.GetByIDs(ctx, transaction, []uuid.UUID{topicID})
	if err != nil {
		return nil, fmt.Errorf("load topic: %w", err)
	}
	if len(topics) == 0 {
		return nil, apierr.NotFound("topic not found")
	}

	now := time.Now()
	question := &types.Question{
		ID:        uuid.New(),
		TopicID:   topicID,
		Text:      text,
		Type:      questionType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	rows := buildAnswerRows(question.ID, answers, now)

	err = transaction.Transaction(func(innerTx *gorm.DB) error {
		if _, err := qs.questionRepo.Create(ctx, innerTx, []*types.Question{question}); err != nil {
			return fmt.Errorf("create question: %w", err)
		}
		if _, err := qs.answerRepo.Create(ctx, innerTx, rows); err != nil {
			return fmt.Errorf("create answers: %w", err)
		}
		return nil
	})
	if err != nil {
		qs.log.Error("Create failed", "error", err, "topic_id", topicID)
		return nil, err
	}

	question.Answers = rows
	return question, nil
}

func (qs *questionService) ListForTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = qs.db
	}

	topics, err := qs.topicRepo.GetByIDs(ctx, transaction, []uuid.UUID{topicID})
	if err != nil {
		return nil, fmt.Errorf("load topic: %w", err)
	}
	if len(topics) == 0 {
		return nil, apierr.NotFound("topic not found")
	}

	questions, err := qs.questionRepo.GetByTopicIDs(ctx, transaction, []uuid.UUID{topicID})
	if err != nil {
		qs.log.Error("ListForTopic failed", "error", err, "topic_id", topicID)
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

func (qs *questionService) Update(ctx context.Context, tx *gorm.DB, topicID, questionID uuid.UUID, upd QuestionUpdate) (*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = qs.db
	}

	question, err := qs.loadOwnedQuestion(ctx, transaction, topicID, questionID)
	if err != nil {
		return nil, err
	}

	effectiveType := question.Type
	if upd.Type != nil {
		if !types.ValidQuestionType(*upd.Type) {
			return nil, apierr.Validation("question type must be %q or %q", types.QuestionTypeSingle, types.QuestionTypeMultiple)
		}
		effectiveType = *upd.Type
	}

	if upd.Answers != nil {
		if err := validateAnswerSet(effectiveType, upd.Answers); err != nil {
			return nil, err
		}
	} else if effectiveType != question.Type {
		// Type change with the answer set kept: the existing answers must
		// already satisfy the new type's invariant.
		existing := make([]AnswerInput, 0, len(question.Answers))
		for _, a := range question.Answers {
			existing = append(existing, AnswerInput{Text: a.Text, IsCorrect: a.IsCorrect})
		}
		if err := validateAnswerSet(effectiveType, existing); err != nil {
			return nil, err
		}
	}

	if upd.Text != nil {
		question.Text = *upd.Text
	}
	question.Type = effectiveType
	now := time.Now()
	question.UpdatedAt = now

	var newRows []*types.Answer
	if upd.Answers != nil {
		newRows = buildAnswerRows(question.ID, upd.Answers, now)
	}

	err = transaction.Transaction(func(innerTx *gorm.DB) error {
		if err := qs.questionRepo.Update(ctx, innerTx, question); err != nil {
			return fmt.Errorf("update question: %w", err)
		}
		if newRows != nil {
			// Full replacement: old rows go and new rows land in the same
			// transaction so no partial answer set is ever visible.
			if err := qs.answerRepo.FullDeleteByQuestionIDs(ctx, innerTx, []uuid.UUID{question.ID}); err != nil {
				return fmt.Errorf("delete old answers: %w", err)
			}
			if _, err := qs.answerRepo.Create(ctx, innerTx, newRows); err != nil {
				return fmt.Errorf("create new answers: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		qs.log.Error("Update failed", "error", err, "question_id", questionID)
		return nil, err
	}

	if newRows != nil {
		question.Answers = newRows
	}
	return question, nil
}

func (qs *questionService) Delete(ctx context.Context, tx *gorm.DB, topicID, questionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = qs.db
	}

	question, err := qs.loadOwnedQuestion(ctx, transaction, topicID, questionID)
	if err != nil {
		return err
	}

	questionIDs := []uuid.UUID{question.ID}
	err = transaction.Transaction(func(innerTx *gorm.DB) error {
		if err := qs.attemptRepo.FullDeleteAnswersByQuestionIDs(ctx, innerTx, questionIDs); err != nil {
			return fmt.Errorf("delete attempt answers: %w", err)
		}
		if err := qs.answerRepo.FullDeleteByQuestionIDs(ctx, innerTx, questionIDs); err != nil {
			return fmt.Errorf("delete answers: %w", err)
		}
		if err := qs.questionRepo.FullDeleteByIDs(ctx, innerTx, questionIDs); err != nil {
			return fmt.Errorf("delete question: %w", err)
		}
		return nil
	})
	if err != nil {
		qs.log.Error("Delete failed", "error", err, "question_id", questionID)
		return err
	}
	return nil
}

func (qs *questionService) loadOwnedQuestion(ctx context.Context, tx *gorm.DB, topicID, questionID uuid.UUID) (*types.Question, error) {
	questions, err := qs.questionRepo.GetByIDs(ctx, tx, []uuid.UUID{questionID})
	if err != nil {
		return nil, fmt.Errorf("load question: %w", err)
	}
	if len(questions) == 0 || questions[0].TopicID != topicID {
		return nil, apierr.NotFound("question not found")
	}
	return questions[0], nil
}

func buildAnswerRows(questionID uuid.UUID, answers []AnswerInput, now time.Time) []*types.Answer {
	rows := make([]*types.Answer, 0, len(answers))
	for _, a := range answers {
		rows = append(rows, &types.Answer{
			ID:         uuid.New(),
			QuestionID: questionID,
			Text:       a.Text,
			IsCorrect:  a.IsCorrect,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return rows
}
