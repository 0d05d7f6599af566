package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-blog-api/internal/auth"
	"go-blog-api/internal/domain"
	"go-blog-api/internal/infrastructure/logger"
	"go-blog-api/internal/port/inbound"
	"go-blog-api/internal/port/outbound"
)

type UserHandler struct {
	users  inbound.UserUseCase
	posts  inbound.PostUseCase
	logger logger.Logger
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// UserResponse is the public shape of a user; the password hash never leaves
// the service.
type UserResponse struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar"`
	Role   string  `json:"role"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
		Role:   string(u.Role),
	}
}

func NewUserHandler(users inbound.UserUseCase, posts inbound.PostUseCase, logger logger.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		posts:  posts,
		logger: logger.WithField("handler", "user"),
	}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), domain.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     auth.Role(req.Role),
	})
	if err != nil {
		respondError(c, h.logger, err, msgUserNotFound)
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, msgUserNotFound)
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, msgUserNotFound)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, msgUserNotFound)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	changes := domain.UserChanges{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Role != nil {
		role := auth.Role(*req.Role)
		changes.Role = &role
	}

	user, err := h.users.UpdateUser(c.Request.Context(), id, changes)
	if err != nil {
		respondError(c, h.logger, err, msgUserNotFound)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// UploadAvatar reads the multipart "file" part and stores it as the user's
// avatar.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	id, ok := pathID(c, msgUserNotFound)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, h.logger, err, msgUserNotFound)
		return
	}
	defer file.Close()

	user, err := h.users.UploadAvatar(c.Request.Context(), id, outbound.AvatarFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		respondError(c, h.logger, err, msgUserNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": user.ID, "avatar": user.Avatar})
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, msgUserNotFound)
	if !ok {
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, msgUserNotFound)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ListPosts(c *gin.Context) {
	id, ok := pathID(c, msgUserNotFound)
	if !ok {
		return
	}

	posts, err := h.posts.ListPostsByUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, msgUserNotFound)
		return
	}

	c.JSON(http.StatusOK, posts)
}
