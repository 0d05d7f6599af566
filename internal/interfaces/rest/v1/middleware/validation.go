package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// PostInput is the body accepted by post create and update.
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ValidatePostInput requires a non-blank title and content. The body is
// cached so the handler can bind it again.
func ValidatePostInput() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in PostInput
		if err := c.ShouldBindBodyWith(&in, binding.JSON); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if strings.TrimSpace(in.Title) == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Title is required."})
			return
		}
		if strings.TrimSpace(in.Content) == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Content is required."})
			return
		}
		c.Next()
	}
}
