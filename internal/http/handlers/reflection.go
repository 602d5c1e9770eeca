package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/mindwell-backend/internal/http/response"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
	"github.com/yungbote/mindwell-backend/internal/services"
)

type ReflectionHandler struct {
	log        *logger.Logger
	reflection services.ReflectionService
}

func NewReflectionHandler(log *logger.Logger, reflection services.ReflectionService) *ReflectionHandler {
	return &ReflectionHandler{log: log.With("handler", "ReflectionHandler"), reflection: reflection}
}

// GET /api/random_question
func (h *ReflectionHandler) RandomQuestion(c *gin.Context) {
	q, err := h.reflection.RandomQuestion(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, q)
}

// POST /api/answer_question
func (h *ReflectionHandler) Answer(c *gin.Context) {
	var req struct {
		QuestionID  uuid.UUID  `json:"question_id" binding:"required"`
		Response    string     `json:"response" binding:"required,max=5000"`
		MoodEntryID *uuid.UUID `json:"mood_entry_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}
	saved, err := h.reflection.Answer(c.Request.Context(), req.QuestionID, req.Response, req.MoodEntryID)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondCreated(c, gin.H{"message": "Response saved successfully", "response": saved})
}
