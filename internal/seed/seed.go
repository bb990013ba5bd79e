package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/services"
	"github.com/quizforge/quizforge-backend/internal/utils"
)

type AnswerSpec struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionSpec struct {
	Text    string       `json:"text"`
	Type    string       `json:"type"`
	Answers []AnswerSpec `json:"answers"`
}

type TopicSpec struct {
	Name      string         `json:"name"`
	Tags      []string       `json:"tags"`
	Questions []QuestionSpec `json:"questions"`
}

type Document struct {
	Topics []TopicSpec `json:"topics"`
}

type Result struct {
	TopicsCreated    int
	TopicsSkipped    int
	QuestionsCreated int
}

type Importer struct {
	db              *gorm.DB
	log             *logger.Logger
	topicService    services.TopicService
	questionService services.QuestionService
}

func NewImporter(
	db *gorm.DB,
	baseLog *logger.Logger,
	topicService services.TopicService,
	questionService services.QuestionService,
) *Importer {
	return &Importer{
		db:              db,
		log:             baseLog.With("service", "SeedImporter"),
		topicService:    topicService,
		questionService: questionService,
	}
}

func (im *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	// The dedupe set lives for exactly one import run and is threaded
	// through explicitly rather than kept as package state.
	usedSlugs := make(map[string]bool)
	return im.Import(ctx, &doc, usedSlugs)
}

// Import loads every topic and its questions, skipping topics whose
// derived slug was already consumed earlier in the same run.
func (im *Importer) Import(ctx context.Context, doc *Document, usedSlugs map[string]bool) (*Result, error) {
	result := &Result{}

	for _, topicSpec := range doc.Topics {
		slug := utils.Slugify(topicSpec.Name)
		if usedSlugs[slug] {
			im.log.Warn("Skipping topic with duplicate slug", "topic_name", topicSpec.Name, "slug", slug)
			result.TopicsSkipped++
			continue
		}
		usedSlugs[slug] = true

		topic, err := im.topicService.CreateOrGet(ctx, nil, topicSpec.Name, topicSpec.Tags)
		if err != nil {
			return result, fmt.Errorf("create topic %q: %w", topicSpec.Name, err)
		}
		result.TopicsCreated++

		for _, questionSpec := range topicSpec.Questions {
			answers := make([]services.AnswerInput, 0, len(questionSpec.Answers))
			for _, a := range questionSpec.Answers {
				answers = append(answers, services.AnswerInput{Text: a.Text, IsCorrect: a.IsCorrect})
			}
			if _, err := im.questionService.Create(ctx, nil, topic.ID, questionSpec.Text, questionSpec.Type, answers); err != nil {
				return result, fmt.Errorf("create question %q: %w", questionSpec.Text, err)
			}
			result.QuestionsCreated++
		}
	}

	im.log.Info("Import finished",
		"topics_created", result.TopicsCreated,
		"topics_skipped", result.TopicsSkipped,
		"questions_created", result.QuestionsCreated,
	)
	return result, nil
}

// BackfillTags derives tags from markers embedded in topic names and
// writes them back. Returns how many topics were updated.
func (im *Importer) BackfillTags(ctx context.Context) (int, error) {
	topics, err := im.topicService.List(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("list topics: %w", err)
	}

	updated := 0
	for _, topic := range topics {
		tags := DeriveTags(topic.Name)
		if len(tags) == 0 {
			im.log.Debug("No tags detected for topic", "topic_name", topic.Name)
			continue
		}
		if _, err := im.topicService.Update(ctx, nil, topic.ID, nil, tags); err != nil {
			return updated, fmt.Errorf("update topic %q: %w", topic.Name, err)
		}
		updated++
	}
	return updated, nil
}

// DeriveTags inspects a topic name for language markers ([BR]/[EN]/[ES])
// and category keywords.
func DeriveTags(name string) []string {
	upper := strings.ToUpper(name)
	var tags []string

	for _, lang := range []string{"BR", "EN", "ES"} {
		if strings.Contains(upper, "["+lang+"]") || strings.Contains(upper, lang+"]") {
			tags = append(tags, lang)
		}
	}

	categories := []struct {
		tag      string
		keywords []string
	}{
		{"Schools", []string{"SCHOOL"}},
		{"University", []string{"UNIVERSITY", "UNIV"}},
		{"Work", []string{"WORK", "TRABAJO"}},
		{"Personal", []string{"PERSONAL"}},
		{"Ondemand", []string{"ONDEMAND", "ON DEMAND"}},
	}
	for _, cat := range categories {
		for _, kw := range cat.keywords {
			if strings.Contains(upper, kw) {
				tags = append(tags, cat.tag)
				break
			}
		}
	}
	return tags
}
