package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/types"
)

type AnswerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, answers []*types.Answer) ([]*types.Answer, error)
	GetByID(ctx context.Context, tx *gorm.DB, answerID uuid.UUID) (*types.Answer, error)
	GetByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.Answer, error)
	Update(ctx context.Context, tx *gorm.DB, answer *types.Answer) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, answerIDs []uuid.UUID) error
	FullDeleteByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) error
	FullDeleteByTopicIDs(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) error
}

type answerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnswerRepo(db *gorm.DB, baseLog *logger.Logger) AnswerRepo {
	repoLog := baseLog.With("repo", "AnswerRepo")
	return &answerRepo{db: db, log: repoLog}
}

func (r *answerRepo) Create(ctx context.Context, tx *gorm.DB, answers []*types.Answer) ([]*types.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(answers) == 0 {
		return []*types.Answer{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepo) GetByID(ctx context.Context, tx *gorm.DB, answerID uuid.UUID) (*types.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Answer
	if err := transaction.WithContext(ctx).
		Where("id = ?", answerID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *answerRepo) GetByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.Answer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Answer
	if len(questionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("question_id IN ?", questionIDs).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *answerRepo) Update(ctx context.Context, tx *gorm.DB, answer *types.Answer) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(answer).Error
}

func (r *answerRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, answerIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(answerIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", answerIDs).
		Delete(&types.Answer{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *answerRepo) FullDeleteByQuestionIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(questionIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("question_id IN ?", questionIDs).
		Delete(&types.Answer{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *answerRepo) FullDeleteByTopicIDs(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(topicIDs) == 0 {
		return nil
	}

	subquery := transaction.Model(&types.Question{}).
		Select("id").
		Where("topic_id IN ?", topicIDs)

	if err := transaction.WithContext(ctx).
		Where("question_id IN (?)", subquery).
		Delete(&types.Answer{}).Error; err != nil {
		return err
	}
	return nil
}
