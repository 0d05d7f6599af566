package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"go-blog-api/internal/applicatoin/facade"
	"go-blog-api/internal/auth"
	"go-blog-api/internal/domain"
	"go-blog-api/internal/infrastructure/config"
	"go-blog-api/internal/infrastructure/database"
	"go-blog-api/internal/infrastructure/hub"
	"go-blog-api/internal/infrastructure/logger"
	"go-blog-api/internal/infrastructure/metrics"
	"go-blog-api/internal/infrastructure/repository"
	"go-blog-api/internal/infrastructure/server"
	"go-blog-api/internal/infrastructure/storage"
	"go-blog-api/internal/interfaces/rest/v1/middleware"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	envPath := flag.String("env", ".env", "path to a dotenv file")
	flag.Parse()

	ctx := context.Background()
	sctx := WithSignal(ctx)

	if err := config.LoadEnvFile(*envPath); err != nil {
		logger.NewLogrusLogger(logger.NewDefaultConfig()).Fatalf("failed to load env file: %v", err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.NewLogrusLogger(logger.NewDefaultConfig()).Fatalf("failed to load config: %v", err)
	}
	log := logger.NewLogrusLogger(&cfg.Logging)

	var m *metrics.Metrics
	hubOpts := []hub.Option{hub.WithCleanupInterval(cfg.Hub.CleanupInterval)}
	if cfg.Metrics.Enabled {
		m = metrics.New()
		hubOpts = append(hubOpts, hub.WithMetrics(m))
	}

	hubInstance := hub.New(log, hubOpts...)
	if err := hubInstance.Start(ctx); err != nil {
		log.Errorf("failed to start hub: %v", err)
		return
	}

	db, err := database.Connect(ctx, cfg.Database, log)
	if err != nil {
		log.Errorf("failed to connect database: %v", err)
		return
	}
	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx, repository.Models()...); err != nil {
			log.Errorf("failed to migrate database: %v", err)
			return
		}
	}

	s3Client, err := storage.NewS3Client(ctx, cfg.Storage)
	if err != nil {
		log.Errorf("failed to configure s3: %v", err)
		return
	}
	avatars := storage.NewS3AvatarStore(s3Client, cfg.Storage, log)

	users := repository.NewUserRepository(db.DB)
	posts := repository.NewPostRepository(db.DB)
	tokens := auth.NewJWTService([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL, cfg.Auth.Issuer)

	userService := facade.NewUserApplicationService(users, avatars, facade.UserEvents{
		Changed: hub.NewPublisher[domain.User](hubInstance),
		Deleted: hub.NewPublisher[domain.UserDeleted](hubInstance),
		Avatar:  hub.NewPublisher[domain.AvatarUpdated](hubInstance),
	}, log)
	postService := facade.NewPostApplicationService(posts, facade.PostEvents{
		Changed: hub.NewPublisher[domain.Post](hubInstance),
		Deleted: hub.NewPublisher[domain.PostDeleted](hubInstance),
	}, log)
	authService := facade.NewAuthApplicationService(users, userService, tokens, log)

	var limiter *middleware.RateLimiter
	limiterDone := make(chan struct{})
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
		limiter.StartCleanup(time.Minute, limiterDone)
	}

	router := InitRouter(routerDeps{
		Config:      cfg,
		Logger:      log,
		Hub:         hubInstance,
		Metrics:     m,
		RateLimiter: limiter,
		Tokens:      tokens,
		Users:       userService,
		Posts:       postService,
		Auth:        authService,
		Notices:     hub.NewPublisher[domain.Notice](hubInstance),
	})
	httpSrv := server.NewHTTPServer(router, cfg.Server, log)
	app := newApplication(log, cfg.Server, httpSrv, hubInstance, db)
	if err := app.Run(sctx); err != nil {
		log.Errorf("failed to run application: %v", err)
	}
	close(limiterDone)
}

type Application struct {
	logger  logger.Logger
	config  config.ServerConfig
	httpSrv server.Server
	hub     *hub.Hub
	db      *database.Postgres
}

func newApplication(
	logger logger.Logger,
	cfg config.ServerConfig,
	httpSrv server.Server,
	hubInstance *hub.Hub,
	db *database.Postgres,
) *Application {
	return &Application{
		logger:  logger.WithField("app", "blog"),
		config:  cfg,
		httpSrv: httpSrv,
		hub:     hubInstance,
		db:      db,
	}
}

// Run serves until ctx is cancelled, then closes every subscriber before
// draining the HTTP server.
func (app *Application) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return app.httpSrv.Start(ctx)
	})

	eg.Go(func() error {
		<-ctx.Done()

		gracefulshutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()

		if err := app.hub.Stop(gracefulshutdownCtx); err != nil {
			app.logger.Errorf("failed to stop hub: %v", err)
		}
		err := app.httpSrv.Stop(gracefulshutdownCtx)
		if cerr := app.db.Close(); cerr != nil {
			app.logger.Errorf("failed to close database: %v", cerr)
		}
		return err
	})

	return eg.Wait()
}

func WithSignal(pctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(pctx)

	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

		<-sigc

		cancel()
	}()

	return ctx
}
