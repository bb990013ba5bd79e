package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/quizforge/quizforge-backend/internal/db"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/repos"
	"github.com/quizforge/quizforge-backend/internal/seed"
	"github.com/quizforge/quizforge-backend/internal/services"
)

func main() {
	filePath := flag.String("file", "", "path to the JSON seed document")
	backfillTags := flag.Bool("backfill-tags", false, "derive tags from existing topic names instead of importing")
	flag.Parse()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	topicRepo := repos.NewTopicRepo(thePG, log)
	questionRepo := repos.NewQuestionRepo(thePG, log)
	answerRepo := repos.NewAnswerRepo(thePG, log)
	attemptRepo := repos.NewQuizAttemptRepo(thePG, log)

	topicService := services.NewTopicService(thePG, log, topicRepo, questionRepo, answerRepo, attemptRepo)
	questionService := services.NewQuestionService(thePG, log, topicRepo, questionRepo, answerRepo, attemptRepo)

	importer := seed.NewImporter(thePG, log, topicService, questionService)
	ctx := context.Background()

	if *backfillTags {
		updated, err := importer.BackfillTags(ctx)
		if err != nil {
			log.Error("Tag backfill failed", "error", err)
			os.Exit(1)
		}
		log.Info("Tag backfill finished", "topics_updated", updated)
		return
	}

	if *filePath == "" {
		fmt.Println("usage: seed -file <seed.json> | seed -backfill-tags")
		os.Exit(2)
	}

	result, err := importer.ImportFile(ctx, *filePath)
	if err != nil {
		log.Error("Seed import failed", "error", err)
		os.Exit(1)
	}
	log.Info("Seed import finished",
		"topics_created", result.TopicsCreated,
		"topics_skipped", result.TopicsSkipped,
		"questions_created", result.QuestionsCreated,
	)
}
