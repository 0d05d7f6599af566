package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"go-blog-api/internal/domain"
	"go-blog-api/internal/infrastructure/logger"
	"go-blog-api/internal/interfaces/rest/v1/middleware"
	"go-blog-api/internal/port/inbound"
)

type PostHandler struct {
	posts  inbound.PostUseCase
	logger logger.Logger
}

func NewPostHandler(posts inbound.PostUseCase, logger logger.Logger) *PostHandler {
	return &PostHandler{
		posts:  posts,
		logger: logger.WithField("handler", "post"),
	}
}

// Owner resolves a post's author for the ownership guard.
func (h *PostHandler) Owner(ctx context.Context, id int64) (int64, error) {
	post, err := h.posts.GetPost(ctx, id)
	if err != nil {
		return 0, err
	}
	return post.UserID, nil
}

// Create runs after ValidatePostInput, which cached the body. The author is
// always the caller.
func (h *PostHandler) Create(c *gin.Context) {
	var in middleware.PostInput
	if err := c.ShouldBindBodyWith(&in, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	identity := middleware.IdentityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), domain.NewPost{
		Title:   in.Title,
		Content: in.Content,
		UserID:  identity.ID,
	})
	if err != nil {
		respondError(c, h.logger, err, msgPostNotFound)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathID(c, msgPostNotFound)
	if !ok {
		return
	}

	post, err := h.posts.GetPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, msgPostNotFound)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := pathID(c, msgPostNotFound)
	if !ok {
		return
	}

	var in middleware.PostInput
	if err := c.ShouldBindBodyWith(&in, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	post, err := h.posts.UpdatePost(c.Request.Context(), id, domain.PostChanges{
		Title:   &in.Title,
		Content: &in.Content,
	})
	if err != nil {
		respondError(c, h.logger, err, msgPostNotFound)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, msgPostNotFound)
	if !ok {
		return
	}

	if err := h.posts.DeletePost(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, msgPostNotFound)
		return
	}

	c.Status(http.StatusNoContent)
}
