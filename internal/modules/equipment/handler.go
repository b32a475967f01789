package equipment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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
	eq := rg.Group("/equipment")
	{
		eq.GET("", h.ListAll)
		eq.GET("/available", h.ListAvailable)
		eq.POST("/check-in", h.CheckIn)
		eq.POST("/:id/check-out", h.CheckOut)
	}
}

// ListAll handles GET /api/v1/equipment
func (h *Handler) ListAll(c *gin.Context) {
	rows, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

// ListAvailable handles GET /api/v1/equipment/available
func (h *Handler) ListAvailable(c *gin.Context) {
	rows, err := h.service.ListAvailable(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

// CheckIn handles POST /api/v1/equipment/check-in
func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid check-in form", errs)
		return
	}

	rec, err := h.service.CheckIn(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rec)
}

// CheckOut handles POST /api/v1/equipment/:id/check-out
func (h *Handler) CheckOut(c *gin.Context) {
	res, err := h.service.CheckOut(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func writeError(c *gin.Context, err error) {
	switch {
	case IsValidation(err):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrAlreadyCheckedOut):
		response.Error(c, http.StatusConflict, "ALREADY_CHECKED_OUT", err.Error())
	case errors.Is(err, ErrStore):
		_ = c.Error(err)
		response.Error(c, http.StatusBadGateway, "STORE_ERROR", "Record store request failed")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
	}
}
