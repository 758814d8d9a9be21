package server

import (
	"github.com/gofiber/fiber/v2"

	"musclejourney/internal/models"
	"musclejourney/internal/service"
)

type createPostRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:   userID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, postID, userID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.JSON(post)
}

// GetFeed returns a page of posts, newest first, with the viewer's like state
// annotated on each entry.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, s.config.FeedPageSize)

	posts, err := s.postService.ComposeFeed(ctx, service.FeedInput{
		ViewerID: userID,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.JSON(posts)
}

func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx := c.Context()
	viewerID := c.Locals("userID").(uint)

	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	page := parsePagination(c, s.config.FeedPageSize)

	posts, err := s.postService.GetUserPosts(ctx, targetUserID, service.FeedInput{
		ViewerID: viewerID,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.JSON(posts)
}

func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(ctx, userID, postID); err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LikePost records the viewer's like. Liking an already-liked post leaves the
// counter untouched and returns the current post.
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.engagementService.LikePost(ctx, userID, postID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.JSON(post)
}

func (s *Server) UnlikePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.engagementService.UnlikePost(ctx, userID, postID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.JSON(post)
}
