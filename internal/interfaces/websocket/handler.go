package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"go-blog-api/internal/infrastructure/hub"
	"go-blog-api/internal/infrastructure/logger"
)

// WebSocketHandler upgrades notification subscribers and reports the live
// websocket set.
type WebSocketHandler struct {
	hub      *hub.Hub
	logger   logger.Logger
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(hubInstance *hub.Hub, logger logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hubInstance,
		logger: logger.WithField("handler", "websocket"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Connect upgrades the request and subscribes it to every broadcast. The
// handler returns once the client goes away.
func (h *WebSocketHandler) Connect(c *gin.Context) {
	if !h.hub.IsRunning() {
		h.logger.Error("Hub is not running")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Service temporarily unavailable",
		})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("Failed to upgrade connection: %v", err)
		return
	}

	wsConn := hub.NewWebSocketConnection("ws-"+uuid.NewString(), conn, h.logger)
	if err := h.hub.Subscribe(wsConn); err != nil {
		h.logger.Errorf("Failed to subscribe WebSocket connection: %v", err)
		_ = wsConn.Close()
		return
	}

	h.logger.Infof("WebSocket connection %s subscribed", wsConn.ID())
	<-wsConn.Context().Done()
	h.logger.Infof("WebSocket connection %s disconnected", wsConn.ID())
}

func (h *WebSocketHandler) GetConnections(c *gin.Context) {
	connections := h.hub.GetConnectionsByType(hub.TypeWebSocket)
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
