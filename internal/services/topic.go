package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/repos"
	"github.com/quizforge/quizforge-backend/internal/types"
	"github.com/quizforge/quizforge-backend/internal/utils"
)

type TopicSummary struct {
	*types.Topic
	QuestionCount int64 `json:"question_count"`
}

type TopicService interface {
	// CreateOrGet is idempotent by name and slug: an existing match is
	// returned unchanged, submitted tags included.
	CreateOrGet(ctx context.Context, tx *gorm.DB, name string, tags []string) (*types.Topic, error)
	List(ctx context.Context, tx *gorm.DB) ([]*TopicSummary, error)
	GetByID(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*types.Topic, error)
	Update(ctx context.Context, tx *gorm.DB, topicID uuid.UUID, name *string, tags []string) (*types.Topic, error)
	Delete(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) error
}

type topicService struct {
	db           *gorm.DB
	log          *logger.Logger
	topicRepo    repos.TopicRepo
	questionRepo repos.QuestionRepo
	answerRepo   repos.AnswerRepo
	attemptRepo  repos.QuizAttemptRepo
}

func NewTopicService(
	db *gorm.DB,
	baseLog *logger.Logger,
	topicRepo repos.TopicRepo,
	questionRepo repos.QuestionRepo,
	answerRepo repos.AnswerRepo,
	attemptRepo repos.QuizAttemptRepo,
) TopicService {
	serviceLog := baseLog.With("service", "TopicService")
	return &topicService{
		db:           db,
		log:          serviceLog,
		topicRepo:    topicRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		attemptRepo:  attemptRepo,
	}
}

func (ts *topicService) CreateOrGet(ctx context.Context, tx *gorm.DB, name string, tags []string) (*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = ts.db
	}

	slug := utils.Slugify(name)

	existing, err := ts.topicRepo.GetByNameOrSlug(ctx, transaction, name, slug)
	if err != nil {
		return nil, fmt.Errorf("lookup topic: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	topic := &types.Topic{
		ID:        uuid.New(),
		Name:      name,
		Slug:      slug,
		Tags:      encodeTags(tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := ts.topicRepo.Create(ctx, transaction, []*types.Topic{topic}); err != nil {
		ts.log.Error("CreateOrGet failed", "error", err, "topic_name", name)
		return nil, fmt.Errorf("create topic: %w", err)
	}
	return topic, nil
}

func (ts *topicService) List(ctx context.Context, tx *gorm.DB) ([]*TopicSummary, error) {
	transaction := tx
	if transaction == nil {
		transaction = ts.db
	}

	topics, err := ts.topicRepo.List(ctx, transaction)
	if err != nil {
		ts.log.Error("List failed", "error", err)
		return nil, fmt.Errorf("list topics: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(topics))
	for _, t := range topics {
		ids = append(ids, t.ID)
	}
	counts, err := ts.topicRepo.CountQuestions(ctx, transaction, ids)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}

	summaries := make([]*TopicSummary, 0, len(topics))
	for _, t := range topics {
		summaries = append(summaries, &TopicSummary{Topic: t, QuestionCount: counts[t.ID]})
	}
	return summaries, nil
}

func (ts *topicService) GetByID(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = ts.db
	}

	topics, err := ts.topicRepo.GetByIDs(ctx, transaction, []uuid.UUID{topicID})
	if err != nil {
		return nil, fmt.Errorf("load topic: %w", err)
	}
	if len(topics) == 0 {
		return nil, apierr.NotFound("topic not found")
	}
	return topics[0], nil
}

func (ts *topicService) Update(ctx context.Context, tx *gorm.DB, topicID uuid.UUID, name *string, tags []string) (*types.Topic, error) {
	transaction := tx
	if transaction == nil {
		transaction = ts.db
	}

	topic, err := ts.GetByID(ctx, transaction, topicID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		topic.Name = *name
		topic.Slug = utils.Slugify(*name)
	}
	if tags != nil {
		topic.Tags = encodeTags(tags)
	}
	topic.UpdatedAt = time.Now()

	if err := ts.topicRepo.Update(ctx, transaction, topic); err != nil {
		ts.log.Error("Update failed", "error", err, "topic_id", topicID)
		return nil, fmt.Errorf("update topic: %w", err)
	}
	return topic, nil
}

// Delete removes the topic and everything it owns. FK constraints are
// not created on migrate, so the cascade is explicit and transactional.
func (ts *topicService) Delete(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ts.db
	}

	if _, err := ts.GetByID(ctx, transaction, topicID); err != nil {
		return err
	}

	topicIDs := []uuid.UUID{topicID}
	err := transaction.Transaction(func(innerTx *gorm.DB) error {
		if err := ts.attemptRepo.FullDeleteByTopicIDs(ctx, innerTx, topicIDs); err != nil {
			return fmt.Errorf("delete attempts: %w", err)
		}
		if err := ts.answerRepo.FullDeleteByTopicIDs(ctx, innerTx, topicIDs); err != nil {
			return fmt.Errorf("delete answers: %w", err)
		}
		if err := ts.questionRepo.FullDeleteByTopicIDs(ctx, innerTx, topicIDs); err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}
		if err := ts.topicRepo.FullDeleteByIDs(ctx, innerTx, topicIDs); err != nil {
			return fmt.Errorf("delete topic: %w", err)
		}
		return nil
	})
	if err != nil {
		ts.log.Error("Delete failed", "error", err, "topic_id", topicID)
		return err
	}
	return nil
}

func encodeTags(tags []string) datatypes.JSON {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}
