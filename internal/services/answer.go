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

type AnswerService interface {
	Update(ctx context.Context, tx *gorm.DB, answerID uuid.UUID, text *string, isCorrect *bool) (*types.Answer, error)
}

type answerService struct {
	db           *gorm.DB
	log          *logger.Logger
	answerRepo   repos.AnswerRepo
	questionRepo repos.QuestionRepo
}

func NewAnswerService(
	db *gorm.DB,
	baseLog *logger.Logger,
	answerRepo repos.AnswerRepo,
	questionRepo repos.QuestionRepo,
) AnswerService {
	serviceLog := baseLog.With("service", "AnswerService")
	return &answerService{
		db:           db,
		log:          serviceLog,
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
	}
}

// Update mutates a single answer while keeping the owning question's
// correctness invariant intact: a single-choice question holds exactly
// one correct answer, a multiple-choice question at least one.
func (as *answerService) Update(ctx context.Context, tx *gorm.DB, answerID uuid.UUID, text *string, isCorrect *bool) (*types.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = as.db
	}

	answer, err := as.answerRepo.GetByID(ctx, transaction, answerID)
	if err != nil {
		return nil, fmt.Errorf("load answer: %w", err)
	}
	if answer == nil {
		return nil, apierr.NotFound("answer not found")
	}

	questions, err := as.questionRepo.GetByIDs(ctx, transaction, []uuid.UUID{answer.QuestionID})
	if err != nil {
		return nil, fmt.Errorf("load question: %w", err)
	}
	if len(questions) == 0 {
		return nil, apierr.NotFound("question not found")
	}
	question := questions[0]

	if isCorrect != nil {
		if err := checkCorrectnessMutation(question, answer, *isCorrect); err != nil {
			return nil, err
		}
		answer.IsCorrect = *isCorrect
	}
	if text != nil {
		answer.Text = *text
	}
	answer.UpdatedAt = time.Now()

	if err := as.answerRepo.Update(ctx, transaction, answer); err != nil {
		as.log.Error("Update failed", "error", err, "answer_id", answerID)
		return nil, fmt.Errorf("update answer: %w", err)
	}
	return answer, nil
}

func checkCorrectnessMutation(question *types.Question, answer *types.Answer, newValue bool) error {
	if newValue && question.Type == types.QuestionTypeSingle {
		for _, other := range question.Answers {
			if other.ID != answer.ID && other.IsCorrect {
				return apierr.InvalidState("single-choice questions can only have one correct answer; unmark the other one first")
			}
		}
	}

	if !newValue && answer.IsCorrect {
		if question.Type == types.QuestionTypeSingle {
			return apierr.InvalidState("single-choice questions must keep one correct answer")
		}
		correct := 0
		for _, other := range question.Answers {
			if other.IsCorrect {
				correct++
			}
		}
		if correct == 1 {
			return apierr.InvalidState("at least one answer must remain correct")
		}
	}
	return nil
}
