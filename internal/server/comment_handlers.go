package server

import (
	"github.com/gofiber/fiber/v2"

	"musclejourney/internal/models"
	"musclejourney/internal/service"
)

type createCommentRequest struct {
	Content string `json:"content"`
}

func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		UserID:  userID,
		PostID:  postID,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (s *Server) ListComments(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(ctx, postID, userID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.JSON(comments)
}

func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(ctx, userID, commentID); err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) LikeComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.engagementService.LikeComment(ctx, userID, commentID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.JSON(comment)
}

func (s *Server) UnlikeComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.engagementService.UnlikeComment(ctx, userID, commentID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.JSON(comment)
}
