package guest

import (
	"net/http"

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
	rg.GET("/guests", h.ListGuests)
	rg.GET("/guests/:id", h.GetGuest)
}

func (h *Handler) ListGuests(c *gin.Context) {
	guests, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list guests")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"guests": guests})
}

func (h *Handler) GetGuest(c *gin.Context) {
	g, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == ErrGuestNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Guest not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load guest")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"guest": g})
}
