package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-blog-api/internal/domain"
	"go-blog-api/internal/infrastructure/logger"
	"go-blog-api/internal/port/outbound"
)

type NotificationHandler struct {
	notices outbound.EventPublisher[domain.Notice]
	logger  logger.Logger
}

type BroadcastRequest struct {
	Msg string `json:"msg" binding:"required"`
}

func NewNotificationHandler(notices outbound.EventPublisher[domain.Notice], logger logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notices: notices,
		logger:  logger.WithField("handler", "notification"),
	}
}

// Broadcast sends {msg} to every live subscriber as a "notification" event.
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnf("Invalid broadcast request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	h.notices.Publish(c.Request.Context(), domain.EventNotification, domain.Notice{Msg: req.Msg})
	c.JSON(http.StatusOK, gin.H{"sent": true})
}
