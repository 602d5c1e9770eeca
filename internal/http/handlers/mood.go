package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/mindwell-backend/internal/http/response"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
	"github.com/yungbote/mindwell-backend/internal/services"
)

type MoodHandler struct {
	log         *logger.Logger
	moodService services.MoodService
}

func NewMoodHandler(log *logger.Logger, moodService services.MoodService) *MoodHandler {
	return &MoodHandler{log: log.With("handler", "MoodHandler"), moodService: moodService}
}

type createMoodReq struct {
	MoodScore *int   `json:"mood_score" binding:"required,min=1,max=10"`
	Note      string `json:"note" binding:"max=2000"`
}

// POST /api/mood
func (h *MoodHandler) Create(c *gin.Context) {
	var req createMoodReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}
	entry, err := h.moodService.Create(c.Request.Context(), *req.MoodScore, req.Note)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondCreated(c, entry)
}

// GET /api/moods
func (h *MoodHandler) List(c *gin.Context) {
	entries, err := h.moodService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, entries)
}

// GET /api/mood/:id
func (h *MoodHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "mood_not_found", errors.New("mood entry not found"))
		return
	}
	entry, err := h.moodService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, entry)
}

// GET /api/mood_analysis
func (h *MoodHandler) Analysis(c *gin.Context) {
	view, err := h.moodService.Analysis(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, view)
}
