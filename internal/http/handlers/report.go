package handlers

import (
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/mindwell-backend/internal/http/response"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
	"github.com/yungbote/mindwell-backend/internal/services"
)

type ReportHandler struct {
	log     *logger.Logger
	reports services.ReportService
}

func NewReportHandler(log *logger.Logger, reports services.ReportService) *ReportHandler {
	return &ReportHandler{log: log.With("handler", "ReportHandler"), reports: reports}
}

// POST /api/reports
func (h *ReportHandler) Generate(c *gin.Context) {
	rec, err := h.reports.Generate(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondCreated(c, rec)
}

// GET /api/reports
func (h *ReportHandler) List(c *gin.Context) {
	list, err := h.reports.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, list)
}

// GET /api/report/download/:filename
// GET /api/admin/report/download/:filename
func (h *ReportHandler) Download(c *gin.Context) {
	rc, rec, err := h.reports.OpenDocument(c.Request.Context(), c.Param("filename"))
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": rec.Filename}))
	c.Header("Cache-Control", "private, no-store")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		h.log.Warn("report download interrupted", "filename", rec.Filename, "error", err)
	}
}
