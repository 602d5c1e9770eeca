package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/mindwell-backend/internal/http/response"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
	"github.com/yungbote/mindwell-backend/internal/services"
)

type PlannerHandler struct {
	log     *logger.Logger
	planner services.PlannerService
}

func NewPlannerHandler(log *logger.Logger, planner services.PlannerService) *PlannerHandler {
	return &PlannerHandler{log: log.With("handler", "PlannerHandler"), planner: planner}
}

// monthFilter reads ?month=&year=; both absent means no filter.
func monthFilter(c *gin.Context) (services.MonthFilter, error) {
	var f services.MonthFilter
	rawMonth, rawYear := strings.TrimSpace(c.Query("month")), strings.TrimSpace(c.Query("year"))
	if rawMonth == "" && rawYear == "" {
		return f, nil
	}
	var err error
	if f.Month, err = strconv.Atoi(rawMonth); err != nil {
		return f, errors.New("month must be a number")
	}
	if f.Year, err = strconv.Atoi(rawYear); err != nil {
		return f, errors.New("year must be a number")
	}
	return f, nil
}

// GET /api/tasks?month=&year=
func (h *PlannerHandler) ListTasks(c *gin.Context) {
	f, err := monthFilter(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_month", err)
		return
	}
	tasks, err := h.planner.ListTasks(c.Request.Context(), f)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, tasks)
}

// POST /api/tasks
func (h *PlannerHandler) CreateTask(c *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required,max=100"`
		Date  string `json:"date" binding:"required,isodate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}
	task, err := h.planner.CreateTask(c.Request.Context(), req.Title, req.Date)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondCreated(c, task)
}

// PATCH /api/tasks/:id
func (h *PlannerHandler) UpdateTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "task_not_found", errors.New("task not found"))
		return
	}
	var req struct {
		Title     *string `json:"title" binding:"omitempty,max=100"`
		Date      *string `json:"date" binding:"omitempty,isodate"`
		Completed *bool   `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}
	task, err := h.planner.UpdateTask(c.Request.Context(), id, services.TaskPatch{
		Title:     req.Title,
		Date:      req.Date,
		Completed: req.Completed,
	})
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, task)
}

// DELETE /api/tasks/:id
func (h *PlannerHandler) DeleteTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "task_not_found", errors.New("task not found"))
		return
	}
	if err := h.planner.DeleteTask(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/activities?month=&year=
func (h *PlannerHandler) ListActivities(c *gin.Context) {
	f, err := monthFilter(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_month", err)
		return
	}
	activities, err := h.planner.ListActivities(c.Request.Context(), f)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondOK(c, activities)
}

// POST /api/activities
func (h *PlannerHandler) LogActivity(c *gin.Context) {
	var req struct {
		Type string `json:"type" binding:"required"`
		Date string `json:"date" binding:"required,isodate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}
	activity, err := h.planner.LogActivity(c.Request.Context(), req.Type, req.Date)
	if err != nil {
		response.RespondAPIError(c, h.log, err)
		return
	}
	response.RespondCreated(c, activity)
}
