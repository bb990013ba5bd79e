package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/types"
)

type QuizAttemptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, attempt *types.QuizAttempt) (*types.QuizAttempt, error)
	CreateAnswers(ctx context.Context, tx *gorm.DB, answers []*types.QuizAttemptAnswer) ([]*types.QuizAttemptAnswer, error)
	CountByTopicID(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (int64, error)
	GetByTopicIDs(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) ([]*types.QuizAttempt, error)
	FullDeleteByTopicIDs(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) error
	FullDeleteAnswersByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) error
}

type quizAttemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizAttemptRepo(db *gorm.DB, baseLog *logger.Logger) QuizAttemptRepo {
	repoLog := baseLog.With("repo", "QuizAttemptRepo")
	return &quizAttemptRepo{db: db, log: repoLog}
}

func (r *quizAttemptRepo) Create(ctx context.Context, tx *gorm.DB, attempt *types.QuizAttempt) (*types.QuizAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Omit("Answers").Create(attempt).Error; err != nil {
		return nil, err
	}
	return attempt, nil
}

func (r *quizAttemptRepo) CreateAnswers(ctx context.Context, tx *gorm.DB, answers []*types.QuizAttemptAnswer) ([]*types.QuizAttemptAnswer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(answers) == 0 {
		return []*types.QuizAttemptAnswer{}, nil
	}

	if err := transaction.WithContext(ctx).Omit("Question").Create(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *quizAttemptRepo) CountByTopicID(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.QuizAttempt{}).
		Where("topic_id = ?", topicID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *quizAttemptRepo) GetByTopicIDs(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) ([]*types.QuizAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.QuizAttempt
	if len(topicIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Answers.Question").
		Where("topic_id IN ?", topicIDs).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizAttemptRepo) FullDeleteByTopicIDs(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(topicIDs) == 0 {
		return nil
	}

	subquery := transaction.Model(&types.QuizAttempt{}).
		Select("id").
		Where("topic_id IN ?", topicIDs)

	if err := transaction.WithContext(ctx).
		Where("attempt_id IN (?)", subquery).
		Delete(&types.QuizAttemptAnswer{}).Error; err != nil {
		return err
	}

	if err := transaction.WithContext(ctx).
		Where("topic_id IN ?", topicIDs).
		Delete(&types.QuizAttempt{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *quizAttemptRepo) FullDeleteAnswersByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(questionIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("question_id IN ?", questionIDs).
		Delete(&types.QuizAttemptAnswer{}).Error; err != nil {
		return err
	}
	return nil
}
