package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-blog-api/internal/auth"
	"go-blog-api/internal/domain"
	"go-blog-api/internal/infrastructure/config"
	"go-blog-api/internal/infrastructure/hub"
	"go-blog-api/internal/infrastructure/logger"
	"go-blog-api/internal/infrastructure/metrics"
	"go-blog-api/internal/interfaces/rest/v1/handler"
	"go-blog-api/internal/interfaces/rest/v1/middleware"
	"go-blog-api/internal/interfaces/sse"
	"go-blog-api/internal/interfaces/websocket"
	"go-blog-api/internal/port/inbound"
	"go-blog-api/internal/port/outbound"
)

// routerDeps is everything the HTTP surface needs. Metrics and RateLimiter
// are optional.
type routerDeps struct {
	Config      *config.Config
	Logger      logger.Logger
	Hub         *hub.Hub
	Metrics     *metrics.Metrics
	RateLimiter *middleware.RateLimiter
	Tokens      auth.TokenVerifier
	Users       inbound.UserUseCase
	Posts       inbound.PostUseCase
	Auth        inbound.AuthUseCase
	Notices     outbound.EventPublisher[domain.Notice]
}

func InitRouter(deps routerDeps) http.Handler {
	log := deps.Logger

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS())
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET(deps.Config.Metrics.Path, gin.WrapH(deps.Metrics.Handler()))
	}

	authenticate := middleware.Authenticate(deps.Tokens, log)
	adminOnly := []gin.HandlerFunc{authenticate, middleware.AuthorizeRole(auth.RoleAdmin)}
	limited := gin.HandlerFunc(func(c *gin.Context) { c.Next() })
	if deps.RateLimiter != nil {
		limited = deps.RateLimiter.Handler()
	}

	healthHandler := handler.NewHealthHandler(deps.Hub, log)
	router.GET("/", healthHandler.Home)
	router.GET("/health", healthHandler.Health)
	router.GET("/hub/status", healthHandler.HubStatus)

	authHandler := handler.NewAuthHandler(deps.Auth, log)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", limited, authHandler.Login)
		authGroup.POST("/signup", limited, authHandler.Signup)
		authGroup.GET("/adminOnly", append(adminOnly, authHandler.AdminOnly)...)
	}

	userHandler := handler.NewUserHandler(deps.Users, deps.Posts, log)
	userGroup := router.Group("/users")
	{
		userGroup.POST("", append(adminOnly, userHandler.Create)...)
		userGroup.GET("/:id", authenticate, middleware.Authorize(), userHandler.Get)
		userGroup.PUT("/:id", append(adminOnly, userHandler.Update)...)
		userGroup.PATCH("/:id/upload-avatar", append(adminOnly, userHandler.UploadAvatar)...)
		userGroup.DELETE("/:id", append(adminOnly, userHandler.Delete)...)
		userGroup.GET("/:id/posts", authenticate, middleware.Authorize(), userHandler.ListPosts)
	}

	postHandler := handler.NewPostHandler(deps.Posts, log)
	ownsPost := middleware.ValidateOwnership(postHandler.Owner, "id", log)
	postGroup := router.Group("/posts")
	{
		postGroup.POST("", authenticate, limited, middleware.ValidatePostInput(), postHandler.Create)
		postGroup.GET("/:id", postHandler.Get)
		postGroup.PUT("/:id", authenticate, middleware.Authorize(), ownsPost, middleware.ValidatePostInput(), postHandler.Update)
		postGroup.DELETE("/:id", authenticate, middleware.Authorize(), ownsPost, postHandler.Delete)
	}

	notificationHandler := handler.NewNotificationHandler(deps.Notices, log)
	router.POST("/notifications/broadcast", append(adminOnly, notificationHandler.Broadcast)...)

	rootGroup := router.Group("")
	operatorGroup := router.Group("/api/v1", adminOnly...)
	sse.InitSSERouter(log, deps.Hub, rootGroup, operatorGroup)
	websocket.InitWebSocketRouter(log, deps.Hub, rootGroup, operatorGroup)

	return router
}
