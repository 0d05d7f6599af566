package sse

import (
	"github.com/gin-gonic/gin"

	"go-blog-api/internal/infrastructure/hub"
	"go-blog-api/internal/infrastructure/logger"
)

// InitSSERouter mounts the event stream on rg and the operator endpoints on
// admin, which the caller guards.
func InitSSERouter(logger logger.Logger, hubInstance *hub.Hub, rg, admin *gin.RouterGroup) {
	sseHandler := NewServerSentEventHandler(hubInstance, logger)

	rg.GET("/notifications/sse", sseHandler.Connect)

	admin.GET("/connections", sseHandler.GetConnections)
	admin.POST("/sse/send/:clientId", sseHandler.SendMessage)
}
