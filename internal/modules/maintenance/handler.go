package maintenance

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"equiptrack/internal/modules/equipment"
	"equiptrack/internal/pkg/response"
	"equiptrack/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/maintenance/messages", h.Compose)
}

// Compose handles POST /api/v1/maintenance/messages
func (h *Handler) Compose(c *gin.Context) {
	var req ComposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid maintenance form", errs)
		return
	}

	msg, err := h.service.Compose(c.Request.Context(), req.EquipmentID, req.Issue)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyIssue), errors.Is(err, ErrInvalidSelection), errors.Is(err, ErrNotCheckedIn):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, equipment.ErrStore):
			_ = c.Error(err)
			response.Error(c, http.StatusBadGateway, "STORE_ERROR", "Record store request failed")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, ComposeResponse{Message: msg})
}
