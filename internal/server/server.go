// Package server contains the HTTP handlers and routing for the Wenje API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"wenje/internal/cache"
	"wenje/internal/config"
	"wenje/internal/database"
	"wenje/internal/middleware"
	"wenje/internal/models"
	"wenje/internal/notifications"
	"wenje/internal/repository"
	"wenje/internal/service"
	"wenje/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	tokenIssuer   = "wenje-api"
	tokenAudience = "wenje-client"
	tokenLifetime = 7 * 24 * time.Hour
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	logger         *slog.Logger

	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository

	images storage.ImageStore
	mailer notifications.Mailer

	relationshipService *service.RelationshipService
	likeService         *service.LikeService
	feedService         *service.FeedService
	cascadeService      *service.CascadeService
	postService         *service.PostService
	commentService      *service.CommentService
	userService         *service.UserService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests and bootstrap layers use this to supply their own DB and Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	logger := middleware.Logger

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("wenje-api"),
		logger:         logger,
		userRepo:       repository.NewUserRepository(db),
		followRepo:     repository.NewFollowRepository(db),
		postRepo:       repository.NewPostRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		likeRepo:       repository.NewLikeRepository(db),
		images:         storage.NewImageStore(cfg, logger),
		mailer:         notifications.NewLogMailer(logger),
	}

	s.relationshipService = service.NewRelationshipService(s.userRepo, s.followRepo)
	s.likeService = service.NewLikeService(s.likeRepo, s.postRepo, s.commentRepo)
	s.feedService = service.NewFeedService(s.postRepo, s.commentRepo, s.likeRepo, s.followRepo)
	s.cascadeService = service.NewCascadeService(
		s.userRepo, s.postRepo, s.commentRepo, s.likeRepo, s.followRepo, s.images, logger)
	s.postService = service.NewPostService(s.postRepo, s.cascadeService)
	s.commentService = service.NewCommentService(s.commentRepo, s.postRepo, s.cascadeService)
	s.userService = service.NewUserService(
		s.userRepo, s.followRepo, s.relationshipService, s.cascadeService, s.images, logger)

	models.SetDevelopment(cfg.IsDevelopment())
	middleware.InitMiddleware(cfg, s.userRepo.GetByID)

	return s, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: time.Minute,
		// Never rate-limit preflight requests.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				StatusCode: fiber.StatusTooManyRequests,
				Status:     "Fail",
				Message:    "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, s.config.Env, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/signin", middleware.RateLimit(
		s.redis, s.config.Env, 10, 5*time.Minute, "signin"), s.Signin)
	auth.Post("/forgotpassword", middleware.RateLimit(
		s.redis, s.config.Env, 3, 10*time.Minute, "forgotpassword"), s.ForgotPassword)
	auth.Patch("/resetpassword/:resetToken", s.ResetPassword)

	// Everything below requires authentication
	protected := api.Group("", middleware.AuthRequired)

	// User routes: fixed paths before the generic /:userId route
	users := protected.Group("/users")
	users.Get("/", s.GetAllUsers)
	users.Get("/me", s.GetMyProfile)
	users.Get("/search", s.SearchUsers)
	users.Get("/findpeople", s.FindPeople)
	users.Patch("/update", s.UpdateMyProfile)
	users.Patch("/updatepassword", s.UpdateMyPassword)
	users.Patch("/uploadimage", s.UploadImage)
	users.Patch("/follow", s.FollowUser)
	users.Patch("/unfollow", s.UnfollowUser)
	users.Delete("/delete", s.DeleteMyAccount)
	users.Get("/:userId", s.GetUserProfile)

	// Post routes: fixed paths before the generic /:postId routes
	posts := protected.Group("/posts")
	posts.Post("/", s.CreatePost)
	posts.Get("/newsfeed", s.GetNewsfeed)
	posts.Get("/byuser/:userId", s.GetPostsByUser)
	posts.Post("/:postId/comments/:commentId/likes", s.LikeComment)
	posts.Post("/:postId/comments", s.CreateComment)
	posts.Get("/:postId/comments/:limit", s.GetComments)
	posts.Delete("/:postId/comments/:commentId", s.DeleteComment)
	posts.Post("/:postId/likes", s.LikePost)
	posts.Get("/:postId", s.GetPost)
	posts.Delete("/:postId", s.DeletePost)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is optional: the API serves without caching.
	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// generateToken issues a signed JWT for the given user id.
func (s *Server) generateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", userID),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(tokenLifetime).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Wenje API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			s.logger.ErrorContext(c.UserContext(), "unhandled error", slog.Any("error", err))
			return models.RespondWithError(c, models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	s.logger.Info("server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			s.logger.Error("error shutting down HTTP server", slog.Any("error", err))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			s.logger.Error("error closing sql DB", slog.Any("error", cerr))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			s.logger.Error("error closing redis", slog.Any("error", rerr))
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
