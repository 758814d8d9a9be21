package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"musclejourney/internal/cache"
	"musclejourney/internal/config"
	"musclejourney/internal/database"
	"musclejourney/internal/models"
	"musclejourney/internal/repository"
	"musclejourney/internal/service"
)

// setupTestServer builds a Server over an in-memory sqlite database with the
// full repository and service graph. The prometheus middleware is left nil so
// repeated setups don't re-register collectors.
func setupTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A fresh pooled connection would see an empty :memory: database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cache.SetClient(nil)

	s := &Server{
		config: &config.Config{
			FeedPageSize:    20,
			SuggestionLimit: 20,
		},
		db: db,
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

	return s, db
}

// newTestApp wires the API routes with an authentication stub that reads the
// viewer from *viewer, so tests can act as different users mid-flow.
func newTestApp(s *Server, viewer *uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", *viewer)
		return c.Next()
	})

	api := app.Group("/api")

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
	friends.Post("/add/:userId", s.SendConnectionRequest)
	friends.Post("/accept/:requestId", s.AcceptConnectionRequest)
	friends.Delete("/reject/:requestId", s.RejectConnectionRequest)
	friends.Delete("/remove/:userId", s.RemoveConnection)

	posts := api.Group("/posts")
	posts.Get("/feed", s.GetFeed)
	posts.Get("/user/:userId", s.GetUserPosts)
	posts.Post("/", s.CreatePost)
	posts.Post("/:id/like", s.LikePost)
	posts.Delete("/:id/like", s.UnlikePost)
	posts.Get("/:id/comments", s.ListComments)
	posts.Post("/:id/comment", s.CreateComment)
	posts.Delete("/comment/:id", s.DeleteComment)
	posts.Get("/:id", s.GetPost)
	posts.Delete("/:id", s.DeletePost)

	comments := api.Group("/comments")
	comments.Post("/:id/like", s.LikeComment)
	comments.Delete("/:id/like", s.UnlikeComment)

	return app
}

// doRequest issues a request against the test app and decodes the JSON body
// into out when out is non-nil. It returns the response status code.
func doRequest(t *testing.T, app *fiber.App, method, path string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < http.StatusMultipleChoices {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, content string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: userID, Content: content}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	return post
}
