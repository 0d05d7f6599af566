package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-blog-api/internal/infrastructure/logger"
)

// HubStatus is the read-only view of the notification hub the status
// endpoint reports.
type HubStatus interface {
	IsRunning() bool
	ConnectionCount() int
}

type HealthHandler struct {
	hub    HubStatus
	logger logger.Logger
	now    func() time.Time
}

func NewHealthHandler(hub HubStatus, logger logger.Logger) *HealthHandler {
	return &HealthHandler{
		hub:    hub,
		logger: logger.WithField("handler", "health"),
		now:    time.Now,
	}
}

func (h *HealthHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from root!!!"})
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) HubStatus(c *gin.Context) {
	isRunning := h.hub.IsRunning()
	connections := h.hub.ConnectionCount()
	h.logger.Debugf("Hub status check - Running: %v, Connections: %d", isRunning, connections)

	status := "healthy"
	code := http.StatusOK
	if !isRunning {
		status = "unavailable"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":      status,
		"hub_running": isRunning,
		"connections": connections,
	})
}
