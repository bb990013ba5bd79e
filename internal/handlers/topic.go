package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/services"
)

type TopicHandler struct {
	log          *logger.Logger
	topicService services.TopicService
}

func NewTopicHandler(log *logger.Logger, topicService services.TopicService) *TopicHandler {
	return &TopicHandler{
		log:          log.With("handler", "TopicHandler"),
		topicService: topicService,
	}
}

// POST /api/topics
func (h *TopicHandler) CreateTopic(c *gin.Context) {
	var req struct {
		Name string   `json:"name" binding:"required,max=200"`
		Tags []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}

	topic, err := h.topicService.CreateOrGet(c.Request.Context(), nil, req.Name, req.Tags)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, topic)
}

// GET /api/topics
func (h *TopicHandler) ListTopics(c *gin.Context) {
	topics, err := h.topicService.List(c.Request.Context(), nil)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, topics)
}

// GET /api/topics/:id
func (h *TopicHandler) GetTopic(c *gin.Context) {
	topicID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	topic, err := h.topicService.GetByID(c.Request.Context(), nil, topicID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, topic)
}

// PUT /api/topics/:id
func (h *TopicHandler) UpdateTopic(c *gin.Context) {
	topicID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name *string  `json:"name" binding:"omitempty,min=1,max=200"`
		Tags []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}

	topic, err := h.topicService.Update(c.Request.Context(), nil, topicID, req.Name, req.Tags)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, topic)
}

// DELETE /api/topics/:id
func (h *TopicHandler) DeleteTopic(c *gin.Context) {
	topicID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.topicService.Delete(c.Request.Context(), nil, topicID); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "topic deleted"})
}
