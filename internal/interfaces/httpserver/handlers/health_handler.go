package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"feasibility-bot/chat-api/internal/interfaces/httpserver/dto"
)

// Version reported by the health endpoint.
const serviceVersion = "1.0.0"

// HealthHandler answers liveness probes. It never contacts the remote
// assistant service.
type HealthHandler struct {
	serviceName string
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(serviceName string) *HealthHandler {
	return &HealthHandler{serviceName: serviceName}
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   h.serviceName,
		Version:   serviceVersion,
	})
}
