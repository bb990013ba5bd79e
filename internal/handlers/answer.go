package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/services"
)

type AnswerHandler struct {
	log           *logger.Logger
	answerService services.AnswerService
}

func NewAnswerHandler(log *logger.Logger, answerService services.AnswerService) *AnswerHandler {
	return &AnswerHandler{
		log:           log.With("handler", "AnswerHandler"),
		answerService: answerService,
	}
}

// PUT /api/answers/:id
func (h *AnswerHandler) UpdateAnswer(c *gin.Context) {
	answerID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Text      *string `json:"text" binding:"omitempty,min=1"`
		IsCorrect *bool   `json:"is_correct"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}

	answer, err := h.answerService.Update(c.Request.Context(), nil, answerID, req.Text, req.IsCorrect)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, answer)
}
