package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/handlers"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/middleware"
)

type RouterConfig struct {
	Log             *logger.Logger
	TopicHandler    *handlers.TopicHandler
	QuestionHandler *handlers.QuestionHandler
	AnswerHandler   *handlers.AnswerHandler
	QuizHandler     *handlers.QuizHandler
	AttemptHandler  *handlers.AttemptHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Topics
		api.POST("/topics", cfg.TopicHandler.CreateTopic)
		api.GET("/topics", cfg.TopicHandler.ListTopics)
		api.GET("/topics/:id", cfg.TopicHandler.GetTopic)
		api.PUT("/topics/:id", cfg.TopicHandler.UpdateTopic)
		api.DELETE("/topics/:id", cfg.TopicHandler.DeleteTopic)
		// Questions
		api.POST("/topics/:id/questions", cfg.QuestionHandler.CreateQuestion)
		api.GET("/topics/:id/questions", cfg.QuestionHandler.ListQuestions)
		api.PUT("/topics/:id/questions/:qid", cfg.QuestionHandler.UpdateQuestion)
		api.DELETE("/topics/:id/questions/:qid", cfg.QuestionHandler.DeleteQuestion)
		// Answers
		api.PUT("/answers/:id", cfg.AnswerHandler.UpdateAnswer)
		// Quiz taking
		api.GET("/topics/:id/quiz", cfg.QuizHandler.GetQuiz)
		api.POST("/topics/:id/attempts", cfg.AttemptHandler.SubmitAttempt)
		api.GET("/topics/:id/attempts", cfg.AttemptHandler.ListAttempts)
	}

	router.NoRoute(func(c *gin.Context) {
		handlers.RespondError(c, http.StatusNotFound, apierr.CodeNotFound,
			fmt.Errorf("route %s %s not found", c.Request.Method, c.Request.URL.Path))
	})

	return router
}
