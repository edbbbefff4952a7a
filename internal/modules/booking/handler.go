package booking

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
	rg.GET("/bookings", h.ListBookings)
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PUT("/bookings/:id", h.UpdateBooking)
	rg.DELETE("/bookings/:id", h.CancelBooking)
	rg.PUT("/bookings/:id/status", h.UpdateStatus)
	rg.GET("/rooms/:id/occupied-dates", h.OccupiedDates)
}

func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err, "Failed to create booking")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err, "Failed to load booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateBooking(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err, "Failed to update booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	if err := h.service.CancelBooking(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err, "Failed to cancel booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), domain.BookingStatus(req.Status))
	if err != nil {
		h.writeServiceError(c, err, "Failed to update booking status")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) OccupiedDates(c *gin.Context) {
	dates, err := h.service.OccupiedDates(c.Request.Context(), c.Param("id"), c.Query("exclude"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute occupied dates")
		return
	}

	list := make([]string, 0, len(dates))
	for d := range dates {
		list = append(list, d)
	}
	response.Success(c, http.StatusOK, gin.H{"occupied_dates": list})
}

func (h *Handler) writeServiceError(c *gin.Context, err error, fallback string) {
	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		response.Conflict(c, conflict.Result.Reason, conflict.Result)
	case errors.Is(err, ErrInvalidDates):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", ErrInvalidDates.Error())
	case errors.Is(err, ErrPaymentStatusRequired):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", ErrPaymentStatusRequired.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking payload")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrConfirmTimeout):
		response.Error(c, http.StatusGatewayTimeout, "CONFIRM_TIMEOUT", "Write was not confirmed in time, retry")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
