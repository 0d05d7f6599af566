package websocket

import (
	"github.com/gin-gonic/gin"

	"go-blog-api/internal/infrastructure/hub"
	"go-blog-api/internal/infrastructure/logger"
)

// InitWebSocketRouter mounts the websocket subscribe endpoint on rg and the
// connection listing on admin.
func InitWebSocketRouter(logger logger.Logger, hubInstance *hub.Hub, rg, admin *gin.RouterGroup) {
	wsHandler := NewWebSocketHandler(hubInstance, logger)

	rg.GET("/notifications", wsHandler.Connect)
	admin.GET("/ws/connections", wsHandler.GetConnections)
}
