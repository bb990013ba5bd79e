package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/services"
)

type QuizHandler struct {
	log         *logger.Logger
	quizService services.QuizService
}

func NewQuizHandler(log *logger.Logger, quizService services.QuizService) *QuizHandler {
	return &QuizHandler{
		log:         log.With("handler", "QuizHandler"),
		quizService: quizService,
	}
}

// GET /api/topics/:id/quiz
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	topicID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	quiz, err := h.quizService.BuildQuiz(c.Request.Context(), nil, topicID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, quiz)
}
