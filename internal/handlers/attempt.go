package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/services"
)

type AttemptHandler struct {
	log            *logger.Logger
	attemptService services.AttemptService
}

func NewAttemptHandler(log *logger.Logger, attemptService services.AttemptService) *AttemptHandler {
	return &AttemptHandler{
		log:            log.With("handler", "AttemptHandler"),
		attemptService: attemptService,
	}
}

// POST /api/topics/:id/attempts
func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	topicID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Answers []struct {
			QuestionID        string   `json:"question_id" binding:"required,uuid"`
			SelectedAnswerIDs []string `json:"selected_answer_ids" binding:"required,min=1,dive,uuid"`
		} `json:"answers" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}

	answers := make([]services.SubmittedAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		questionID, err := uuid.Parse(a.QuestionID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
			return
		}
		selected := make([]uuid.UUID, 0, len(a.SelectedAnswerIDs))
		for _, raw := range a.SelectedAnswerIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
				return
			}
			selected = append(selected, id)
		}
		answers = append(answers, services.SubmittedAnswer{
			QuestionID:        questionID,
			SelectedAnswerIDs: selected,
		})
	}

	result, err := h.attemptService.Submit(c.Request.Context(), nil, topicID, answers)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, result)
}

// GET /api/topics/:id/attempts
func (h *AttemptHandler) ListAttempts(c *gin.Context) {
	topicID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	attempts, err := h.attemptService.ListForTopic(c.Request.Context(), nil, topicID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, attempts)
}
