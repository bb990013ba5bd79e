package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/services"
)

type QuestionHandler struct {
	log             *logger.Logger
	questionService services.QuestionService
}

func NewQuestionHandler(log *logger.Logger, questionService services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		log:             log.With("handler", "QuestionHandler"),
		questionService: questionService,
	}
}

type answerInput struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect *bool  `json:"is_correct" binding:"required"`
}

func toAnswerInputs(in []answerInput) []services.AnswerInput {
	out := make([]services.AnswerInput, 0, len(in))
	for _, a := range in {
		out = append(out, services.AnswerInput{Text: a.Text, IsCorrect: *a.IsCorrect})
	}
	return out
}

// POST /api/topics/:id/questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	topicID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Text    string        `json:"text" binding:"required"`
		Type    string        `json:"type" binding:"required,oneof=single multiple"`
		Answers []answerInput `json:"answers" binding:"required,min=2,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), nil, topicID, req.Text, req.Type, toAnswerInputs(req.Answers))
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondCreated(c, question)
}

// GET /api/topics/:id/questions
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	topicID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	questions, err := h.questionService.ListForTopic(c.Request.Context(), nil, topicID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, questions)
}

// PUT /api/topics/:id/questions/:qid
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	topicID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	questionID, ok := parseUUIDParam(c, "qid")
	if !ok {
		return
	}

	var req struct {
		Text    *string       `json:"text" binding:"omitempty,min=1"`
		Type    *string       `json:"type" binding:"omitempty,oneof=single multiple"`
		Answers []answerInput `json:"answers" binding:"omitempty,min=2,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}

	upd := services.QuestionUpdate{
		Text: req.Text,
		Type: req.Type,
	}
	if req.Answers != nil {
		upd.Answers = toAnswerInputs(req.Answers)
	}

	question, err := h.questionService.Update(c.Request.Context(), nil, topicID, questionID, upd)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, question)
}

// DELETE /api/topics/:id/questions/:qid
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	topicID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	questionID, ok := parseUUIDParam(c, "qid")
	if !ok {
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), nil, topicID, questionID); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "question deleted"})
}
