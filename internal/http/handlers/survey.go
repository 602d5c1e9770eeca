package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/mindwell-backend/internal/http/response"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
	"github.com/yungbote/mindwell-backend/internal/services"
)

type SurveyHandler struct {
	log           *logger.Logger
	surveyService services.SurveyService
}

func NewSurveyHandler(log *logger.Logger, surveyService services.SurveyService) *SurveyHandler {
	return &SurveyHandler{log: log.With("handler", "SurveyHandler"), surveyService: surveyService}
}

type submitSurveyReq struct {
	Date             string   `json:"date" binding:"required,isodate"`
	Activities       []string `json:"activities" binding:"required,dive,activity_id"`
	CustomActivities []string `json:"custom_activities"`
	SocialMediaTime  string   `json:"social_media_time" binding:"required,social_media_bucket"`
}

// GET /api/survey/options
func (h *SurveyHandler) Options(c *gin.Context) {
	response.RespondOK(c, h.surveyService.Options())
}

// POST /api/survey
// 201 when the day's survey is new, 200 when it replaced an earlier submission.
func (h *SurveyHandler) Submit(c *gin.Context) {
	var req submitSurveyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}
	s, created, err := h.surveyService.Submit(c.Request.Context(), services.SurveyInput{
		Date:             req.Date,
		Activities:       req.Activities,
		CustomActivities: req.CustomActivities,
		SocialMediaTime:  req.SocialMediaTime,
	})
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, s)
}

// GET /api/survey/:date
func (h *SurveyHandler) Get(c *gin.Context) {
	s, err := h.surveyService.Get(c.Request.Context(), c.Param("date"))
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, s)
}

// GET /api/survey/stats
func (h *SurveyHandler) Stats(c *gin.Context) {
	stats, err := h.surveyService.Stats(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, stats)
}
