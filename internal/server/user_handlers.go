package server

import (
	"github.com/gofiber/fiber/v2"

	"musclejourney/internal/models"
	"musclejourney/internal/validation"
)

func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetProfile(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.JSON(user)
}

func (s *Server) GetUserByUsername(c *fiber.Ctx) error {
	ctx := c.Context()

	username := c.Params("username")
	if err := validation.Username(username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	user, err := s.userService.GetProfileByUsername(ctx, username)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.JSON(user)
}

func (s *Server) GetUser(c *fiber.Ctx) error {
	ctx := c.Context()

	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetProfile(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.JSON(user)
}
