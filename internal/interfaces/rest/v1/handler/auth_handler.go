package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-blog-api/internal/auth"
	"go-blog-api/internal/domain"
	"go-blog-api/internal/infrastructure/logger"
	"go-blog-api/internal/port/inbound"
)

type AuthHandler struct {
	auth   inbound.AuthUseCase
	logger logger.Logger
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

func NewAuthHandler(authUseCase inbound.AuthUseCase, logger logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   authUseCase,
		logger: logger.WithField("handler", "auth"),
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err, msgInvalidCredentials)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	token, user, err := h.auth.Signup(c.Request.Context(), domain.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     auth.Role(req.Role),
	})
	if err != nil {
		respondError(c, h.logger, err, msgUserNotFound)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": newUserResponse(user)})
}

func (h *AuthHandler) AdminOnly(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"secretData": "only admin can see this"})
}
