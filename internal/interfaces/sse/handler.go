package sse

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-blog-api/internal/infrastructure/hub"
	"go-blog-api/internal/infrastructure/logger"
)

type ServerSentEventHandler struct {
	hub    *hub.Hub
	logger logger.Logger
}

type SendMessageRequest struct {
	Event string `json:"event" binding:"required"`
	Data  any    `json:"data"`
}

func NewServerSentEventHandler(hubInstance *hub.Hub, logger logger.Logger) *ServerSentEventHandler {
	return &ServerSentEventHandler{
		hub:    hubInstance,
		logger: logger.WithField("handler", "sse"),
	}
}

// Connect opens an event stream and keeps it subscribed until the client
// disconnects.
func (h *ServerSentEventHandler) Connect(c *gin.Context) {
	if !h.hub.IsRunning() {
		h.logger.Error("Hub is not running")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Service temporarily unavailable",
		})
		return
	}

	conn := hub.NewSSEConnection(c.Request.Context(), "sse-"+uuid.NewString(), c.Writer, h.logger)
	if err := h.hub.Subscribe(conn); err != nil {
		h.logger.Errorf("Failed to subscribe connection: %v", err)
		_ = conn.Close()
		c.Writer.Header().Del("Content-Type")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Service temporarily unavailable",
		})
		return
	}

	if err := conn.Hello(); err != nil {
		h.logger.Warnf("SSE connection %s dropped before hello: %v", conn.ID(), err)
		_ = conn.Close()
		return
	}

	h.logger.Infof("SSE connection %s subscribed", conn.ID())
	conn.Serve()
	h.logger.Infof("SSE connection %s disconnected", conn.ID())
}

// SendMessage delivers one event to a single connection.
func (h *ServerSentEventHandler) SendMessage(c *gin.Context) {
	clientID := c.Param("clientId")

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message format"})
		return
	}

	message, err := hub.NewMessage(req.Event, req.Data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message format"})
		return
	}

	if err := h.hub.SendToConnection(c.Request.Context(), clientID, message); err != nil {
		if errors.Is(err, hub.ErrConnectionGone) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Connection not found"})
			return
		}
		h.logger.Errorf("Failed to send message to client %s: %v", clientID, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "sent",
		"client_id": clientID,
		"event":     message.Event,
	})
}

// GetConnections lists every live subscriber regardless of transport.
func (h *ServerSentEventHandler) GetConnections(c *gin.Context) {
	connections := h.hub.GetConnections()
	connectionInfo := make([]gin.H, len(connections))

	for i, conn := range connections {
		connectionInfo[i] = gin.H{
			"id":     conn.ID(),
			"type":   conn.Type(),
			"closed": conn.IsClosed(),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_connections": len(connections),
		"connections":       connectionInfo,
		"hub_running":       h.hub.IsRunning(),
	})
}
