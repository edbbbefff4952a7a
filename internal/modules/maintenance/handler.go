package maintenance

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
	rg.GET("/maintenance/issues", h.ListIssues)
	rg.POST("/maintenance/issues", h.ReportIssue)
	rg.PUT("/maintenance/issues/:id/status", h.UpdateIssueStatus)
	rg.GET("/maintenance/recurring", h.ListTemplates)
	rg.POST("/maintenance/recurring", h.CreateTemplate)
	rg.POST("/maintenance/recurring/fire", h.FireDue)
}

type updateIssueStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	AssignedTo string `json:"assigned_to"`
}

func (h *Handler) ListIssues(c *gin.Context) {
	issues, err := h.service.ListIssues(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.writeServiceError(c, err, "Failed to list issues")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"issues": issues})
}

func (h *Handler) ReportIssue(c *gin.Context) {
	var req ReportIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	issue, err := h.service.ReportIssue(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err, "Failed to report issue")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"issue": issue})
}

func (h *Handler) UpdateIssueStatus(c *gin.Context) {
	var req updateIssueStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	err := h.service.UpdateIssueStatus(c.Request.Context(), c.Param("id"),
		domain.IssueStatus(req.Status), req.AssignedTo)
	if err != nil {
		h.writeServiceError(c, err, "Failed to update issue")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) ListTemplates(c *gin.Context) {
	templates, err := h.service.ListTemplates(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err, "Failed to list recurring tasks")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recurring_tasks": templates})
}

func (h *Handler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	t, err := h.service.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err, "Failed to create recurring task")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"recurring_task": t})
}

func (h *Handler) FireDue(c *gin.Context) {
	fired, err := h.service.FireDue(c.Request.Context(), c.Query("today"))
	if err != nil {
		h.writeServiceError(c, err, "Failed to fire recurring tasks")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"fired": fired})
}

func (h *Handler) writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidFrequency):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrIssueNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Issue not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
