package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-blog-api/internal/auth"
	"go-blog-api/internal/domain"
	"go-blog-api/internal/infrastructure/logger"
)

const (
	msgInvalidBody        = "Invalid request body"
	msgInternalError      = "Internal server error"
	msgUserNotFound       = "User not found"
	msgPostNotFound       = "Post not found"
	msgInvalidCredentials = "Invalid credentials"
	msgEmailTaken         = "Email already registered"
)

// respondError maps err onto the HTTP error taxonomy. notFound is the
// message used for domain.ErrNotFound on this route.
func respondError(c *gin.Context, log logger.Logger, err error, notFound string) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": msgEmailTaken})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgInvalidCredentials})
	default:
		_ = c.Error(err)
		log.WithError(err).Errorf("%s %s failed", c.Request.Method, c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
	}
}

// pathID parses the :id segment. An unparseable id is reported as notFound.
func pathID(c *gin.Context, notFound string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return 0, false
	}
	return id, true
}
