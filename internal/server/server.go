package server

import (
	"context"
	"time"

	"musclejourney/internal/cache"
	"musclejourney/internal/config"
	"musclejourney/internal/database"
	"musclejourney/internal/middleware"
	"musclejourney/internal/repository"
	"musclejourney/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo         repository.UserRepository
	relationshipRepo repository.RelationshipRepository
	postRepo         repository.PostRepository
	commentRepo      repository.CommentRepository
	engagementRepo   repository.EngagementRepository

	userService         *service.UserService
	relationshipService *service.RelationshipService
	suggestionService   *service.SuggestionService
	postService         *service.PostService
	commentService      *service.CommentService
	engagementService   *service.EngagementService
}

// NewServer wires the full dependency graph: database, redis, repositories
// and services. It is the production constructor used by cmd/server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	redisClient := cache.InitRedis(cfg.RedisURL)

	middleware.InitMiddleware(cfg)
	middleware.SetRevocationClient(redisClient)

	return newServerWithDeps(cfg, db, redisClient), nil
}

// NewServerWithDeps builds a Server around pre-constructed dependencies.
// Tests use it with an in-memory sqlite database and a miniredis client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	middleware.InitMiddleware(cfg)
	middleware.SetRevocationClient(redisClient)
	return newServerWithDeps(cfg, db, redisClient)
}

func newServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	s := &Server{
		config: cfg,
		db:     db,
		redis:  redisClient,
	}

	s.userRepo = repository.NewUserRepository(db)
	s.relationshipRepo = repository.NewRelationshipRepository(db)
	s.postRepo = repository.NewPostRepository(db)
	s.commentRepo = repository.NewCommentRepository(db)
	s.engagementRepo = repository.NewEngagementRepository(db)

	s.userService = service.NewUserService(s.userRepo)
	s.relationshipService = service.NewRelationshipService(s.relationshipRepo, s.userRepo)
	s.suggestionService = service.NewSuggestionService(s.userRepo)
	s.postService = service.NewPostService(s.postRepo, s.engagementRepo)
	s.commentService = service.NewCommentService(s.commentRepo, s.postRepo, s.engagementRepo)
	s.engagementService = service.NewEngagementService(s.engagementRepo, s.postRepo, s.commentRepo)

	s.promMiddleware = middleware.InitMetrics("musclejourney-api")

	return s
}

func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
	}))
}

func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.HealthCheck)

	s.promMiddleware.RegisterAt(app, "/metrics")
	app.Get("/monitor", monitor.New())

	api := app.Group("/api")
	api.Use(middleware.AuthRequired)

	users := api.Group("/users")
	users.Get("/me", s.GetCurrentUser)
	users.Get("/username/:username", s.GetUserByUsername)
	users.Get("/:id", s.GetUser)

	friends := api.Group("/friends")
	friends.Get("/list", s.ListConnections)
	friends.Get("/requests", s.ListIncomingRequests)
	friends.Get("/requests/sent", s.ListSentRequests)
	friends.Get("/suggestions", s.GetSuggestions)
	friends.Get("/status/:userId", s.GetConnectionStatus)
	friends.Post("/add/:userId", s.rateLimit("friend-request"), s.SendConnectionRequest)
	friends.Post("/accept/:requestId", s.AcceptConnectionRequest)
	friends.Delete("/reject/:requestId", s.RejectConnectionRequest)
	friends.Delete("/remove/:userId", s.RemoveConnection)

	posts := api.Group("/posts")
	posts.Get("/feed", s.GetFeed)
	posts.Get("/user/:userId", s.GetUserPosts)
	posts.Post("/", s.rateLimit("post-create"), s.CreatePost)
	posts.Post("/:id/like", s.LikePost)
	posts.Delete("/:id/like", s.UnlikePost)
	posts.Get("/:id/comments", s.ListComments)
	posts.Post("/:id/comment", s.rateLimit("comment-create"), s.CreateComment)
	posts.Delete("/comment/:id", s.DeleteComment)
	posts.Get("/:id", s.GetPost)
	posts.Delete("/:id", s.DeletePost)

	comments := api.Group("/comments")
	comments.Post("/:id/like", s.LikeComment)
	comments.Delete("/:id/like", s.UnlikeComment)
}

// rateLimit returns a per-user limiter for write endpoints, or a pass-through
// when rate limiting is disabled by configuration.
func (s *Server) rateLimit(name string) fiber.Handler {
	if !s.config.RateLimitEnabled {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	window := time.Duration(s.config.RateLimitWindow) * time.Second
	return middleware.RateLimit(s.redis, s.config.RateLimitMax, window, name)
}

// Shutdown releases the server's external connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var firstErr error
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			firstErr = err
		}
	}
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	checks := fiber.Map{}
	healthy := true

	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		checks["database"] = "unreachable"
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	if s.redis != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := s.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "unreachable"
		} else {
			checks["redis"] = "ok"
		}
	} else {
		checks["redis"] = "disabled"
	}

	if !healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"checks": checks,
		})
	}
	return c.JSON(fiber.Map{
		"status": "ready",
		"checks": checks,
	})
}

func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}
