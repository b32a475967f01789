package export

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"equiptrack/internal/modules/equipment"
	"equiptrack/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/equipment/export", h.Download)
}

// Download handles GET /api/v1/equipment/export
func (h *Handler) Download(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := h.service.Export(c.Request.Context(), &buf); err != nil {
		_ = c.Error(err)
		if errors.Is(err, equipment.ErrStore) {
			response.Error(c, http.StatusBadGateway, "STORE_ERROR", "Record store request failed")
			return
		}
		response.Error(c, http.StatusInternalServerError, "EXPORT_FAILED", "Could not build workbook")
		return
	}

	_ = response.Attachment(c, Filename, ContentType, func(w http.ResponseWriter) error {
		_, err := buf.WriteTo(w)
		return err
	})
}
