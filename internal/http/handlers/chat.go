package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/mindwell-backend/internal/http/response"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
	"github.com/yungbote/mindwell-backend/internal/services"
)

type ChatHandler struct {
	log  *logger.Logger
	chat services.ChatService
}

func NewChatHandler(log *logger.Logger, chat services.ChatService) *ChatHandler {
	return &ChatHandler{log: log.With("handler", "ChatHandler"), chat: chat}
}

// POST /api/chat
func (h *ChatHandler) Send(c *gin.Context) {
	var req struct {
		Message *string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}
	reply, err := h.chat.Send(c.Request.Context(), *req.Message)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, reply)
}

// GET /api/chat/history
func (h *ChatHandler) History(c *gin.Context) {
	turns, err := h.chat.History(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, turns)
}
