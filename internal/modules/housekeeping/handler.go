package housekeeping

import (
	"errors"
	"net/http"

	"coliving/internal/domain"
	"coliving/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/housekeeping/tasks", h.Tasks)
	rg.GET("/housekeeping/plan", h.Plan)
	rg.POST("/rooms/:id/status", h.SetRoomStatus)
	rg.POST("/rooms/:id/clean", h.MarkRoomClean)
}

type setStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	AssignedTo string `json:"assigned_to"`
	Priority   int    `json:"priority"`
}

func (h *Handler) Tasks(c *gin.Context) {
	tasks, err := h.service.TasksForDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.writeServiceError(c, err, "Failed to derive tasks")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tasks": tasks})
}

func (h *Handler) Plan(c *gin.Context) {
	plan, err := h.service.PlanForDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.writeServiceError(c, err, "Failed to derive plan")
		return
	}
	response.Success(c, http.StatusOK, plan)
}

func (h *Handler) SetRoomStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	err := h.service.SetRoomStatus(c.Request.Context(), c.Param("id"),
		domain.HousekeepingStatus(req.Status), req.AssignedTo, req.Priority)
	if err != nil {
		h.writeServiceError(c, err, "Failed to update room status")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) MarkRoomClean(c *gin.Context) {
	if err := h.service.MarkRoomClean(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err, "Failed to mark room clean")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", ErrInvalidStatus.Error())
	case errors.Is(err, ErrUnknownRoom):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
