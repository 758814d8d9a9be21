package server

import (
	"github.com/gofiber/fiber/v2"

	"musclejourney/internal/models"
)

// SendConnectionRequest creates a pending connection request to another user.
func (s *Server) SendConnectionRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	rel, err := s.relationshipService.SendRequest(ctx, userID, targetUserID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rel)
}

// AcceptConnectionRequest transitions a pending request to connected. Accepting
// an already-accepted request returns the existing relationship unchanged.
func (s *Server) AcceptConnectionRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	rel, err := s.relationshipService.AcceptRequest(ctx, userID, requestID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.JSON(rel)
}

// RejectConnectionRequest discards a pending request. Rejecting a request that
// no longer exists is a no-op.
func (s *Server) RejectConnectionRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	if err := s.relationshipService.RejectRequest(ctx, userID, requestID); err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveConnection deletes the relationship with another user in either
// direction. Removing an absent connection still succeeds.
func (s *Server) RemoveConnection(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.relationshipService.RemoveConnection(ctx, userID, targetUserID); err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) ListConnections(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	users, err := s.relationshipService.ListConnections(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.JSON(users)
}

func (s *Server) ListIncomingRequests(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	requests, err := s.relationshipService.ListIncomingRequests(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.JSON(requests)
}

func (s *Server) ListSentRequests(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	requests, err := s.relationshipService.ListSentRequests(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.JSON(requests)
}

// GetConnectionStatus reports the relationship state between the viewer and
// another user, from the viewer's perspective.
func (s *Server) GetConnectionStatus(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	state, rel, err := s.relationshipService.CheckStatus(ctx, userID, targetUserID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	resp := fiber.Map{"status": state}
	if rel != nil {
		resp["relationship"] = rel
	}
	return c.JSON(resp)
}

// GetSuggestions returns users the viewer has no relationship with.
func (s *Server) GetSuggestions(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	limit := c.QueryInt("limit", s.config.SuggestionLimit)
	users, err := s.suggestionService.Suggest(ctx, userID, limit)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return c.JSON(users)
}
