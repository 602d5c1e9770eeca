package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/mindwell-backend/internal/http/response"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
	"github.com/yungbote/mindwell-backend/internal/services"
)

type HelpHandler struct {
	log  *logger.Logger
	help services.HelpService
}

func NewHelpHandler(log *logger.Logger, help services.HelpService) *HelpHandler {
	return &HelpHandler{log: log.With("handler", "HelpHandler"), help: help}
}

// GET /api/help
func (h *HelpHandler) Visit(c *gin.Context) {
	page, err := h.help.Visit(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, page)
}

// GET /api/help/stats
func (h *HelpHandler) Stats(c *gin.Context) {
	stats, err := h.help.Stats(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, stats)
}
