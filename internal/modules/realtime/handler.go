package realtime

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"equiptrack/internal/domain"
	"equiptrack/internal/pkg/response"
)

// AvailableLister supplies the snapshot sent to a new connection.
type AvailableLister interface {
	ListAvailable(ctx context.Context) ([]domain.EquipmentRecord, error)
}

type Handler struct {
	hub       *Hub
	equipment AvailableLister
}

func NewHandler(hub *Hub, equipment AvailableLister) *Handler {
	return &Handler{hub: hub, equipment: equipment}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/availability", h.Availability)
}

// Availability handles GET /api/v1/ws/availability
func (h *Handler) Availability(c *gin.Context) {
	rows, err := h.equipment.ListAvailable(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusBadGateway, "STORE_ERROR", "Record store request failed")
		return
	}

	if err := h.hub.ServeWS(c.Writer, c.Request, rows); err != nil {
		// Upgrade already wrote the HTTP error.
		log.Printf("ws_upgrade_failed remote=%s error=%v", c.ClientIP(), err)
	}
}
