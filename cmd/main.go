package main

import (
	"fmt"
	"os"

	"github.com/quizforge/quizforge-backend/internal/db"
	"github.com/quizforge/quizforge-backend/internal/handlers"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/repos"
	"github.com/quizforge/quizforge-backend/internal/server"
	"github.com/quizforge/quizforge-backend/internal/services"
	"github.com/quizforge/quizforge-backend/internal/utils"
)

func main() {
	// Logger
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

	// Postgres
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

	// Repos
	log.Info("Setting up Repos from main...")
	topicRepo := repos.NewTopicRepo(thePG, log)
	questionRepo := repos.NewQuestionRepo(thePG, log)
	answerRepo := repos.NewAnswerRepo(thePG, log)
	attemptRepo := repos.NewQuizAttemptRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	topicService := services.NewTopicService(thePG, log, topicRepo, questionRepo, answerRepo, attemptRepo)
	questionService := services.NewQuestionService(thePG, log, topicRepo, questionRepo, answerRepo, attemptRepo)
	answerService := services.NewAnswerService(thePG, log, answerRepo, questionRepo)
	quizService := services.NewQuizService(thePG, log, topicRepo, nil)
	attemptService := services.NewAttemptService(thePG, log, topicRepo, attemptRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	topicHandler := handlers.NewTopicHandler(log, topicService)
	questionHandler := handlers.NewQuestionHandler(log, questionService)
	answerHandler := handlers.NewAnswerHandler(log, answerService)
	quizHandler := handlers.NewQuizHandler(log, quizService)
	attemptHandler := handlers.NewAttemptHandler(log, attemptService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:             log,
		TopicHandler:    topicHandler,
		QuestionHandler: questionHandler,
		AnswerHandler:   answerHandler,
		QuizHandler:     quizHandler,
		AttemptHandler:  attemptHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
