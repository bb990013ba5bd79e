package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/types"
)

type TopicRepo interface {
	Create(ctx context.Context, tx *gorm.DB, topics []*types.Topic) ([]*types.Topic, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) ([]*types.Topic, error)
	GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*types.Topic, error)
	GetByNameOrSlug(ctx context.Context, tx *gorm.DB, name, slug string) (*types.Topic, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error)
	CountQuestions(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	Update(ctx context.Context, tx *gorm.DB, topic *types.Topic) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) error
}

type topicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	repoLog := baseLog.With("repo", "TopicRepo")
	return &topicRepo{db: db, log: repoLog}
}

func (r *topicRepo) Create(ctx context.Context, tx *gorm.DB, topics []*types.Topic) ([]*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(topics) == 0 {
		return []*types.Topic{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *topicRepo) GetByIDs(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) ([]*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Topic
	if len(topicIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", topicIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *topicRepo) GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Topic
	if err := transaction.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", topicID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *topicRepo) GetByNameOrSlug(ctx context.Context, tx *gorm.DB, name, slug string) (*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Topic
	if err := transaction.WithContext(ctx).
		Where("name = ? OR slug = ?", name, slug).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *topicRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Topic
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *topicRepo) CountQuestions(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	counts := make(map[uuid.UUID]int64, len(topicIDs))
	if len(topicIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		TopicID uuid.UUID
		Count   int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Question{}).
		Select("topic_id, COUNT(*) as count").
		Where("topic_id IN ?", topicIDs).
		Group("topic_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.TopicID] = row.Count
	}
	return counts, nil
}

func (r *topicRepo) Update(ctx context.Context, tx *gorm.DB, topic *types.Topic) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(topic).Error
}

func (r *topicRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, topicIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(topicIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", topicIDs).
		Delete(&types.Topic{}).Error; err != nil {
		return err
	}
	return nil
}
