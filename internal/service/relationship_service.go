// Package service implements the business logic layer of the application.
package service

import (
	"context"
	"errors"

	"musclejourney/internal/models"
	"musclejourney/internal/observability"
	"musclejourney/internal/repository"
)

// RelationshipService provides connection-request and connection business logic.
type RelationshipService struct {
	relationshipRepo repository.RelationshipRepository
	userRepo         repository.UserRepository
}

// NewRelationshipService returns a new RelationshipService.
func NewRelationshipService(relationshipRepo repository.RelationshipRepository, userRepo repository.UserRepository) *RelationshipService {
	return &RelationshipService{
		relationshipRepo: relationshipRepo,
		userRepo:         userRepo,
	}
}

// SendRequest creates a pending connection request toward the target user.
func (s *RelationshipService) SendRequest(ctx context.Context, userID, targetUserID uint) (*models.Relationship, error) {
	if userID == targetUserID {
		return nil, models.NewValidationError("Cannot send a connection request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	existing, err := s.relationshipRepo.GetBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case models.RelationshipStatusAccepted:
			return nil, models.NewConflictError("You are already connected")
		case models.RelationshipStatusPending:
			if existing.InitiatorID == userID {
				return nil, models.NewConflictError("Connection request already sent")
			}
			return nil, models.NewConflictError("This user has already sent you a connection request")
		}
	}

	relationship := &models.Relationship{
		InitiatorID: userID,
		TargetID:    targetUserID,
		Status:      models.RelationshipStatusPending,
	}
	if err := s.relationshipRepo.Create(ctx, relationship); err != nil {
		return nil, err
	}

	observability.RecordRelationshipTransition(observability.TransitionRequested)
	return s.relationshipRepo.GetByID(ctx, relationship.ID)
}

// AcceptRequest accepts a pending connection request addressed to the user.
// Accepting an already-accepted request is a no-op success so retried
// acknowledgements do not error.
func (s *RelationshipService) AcceptRequest(ctx context.Context, userID, requestID uint) (*models.Relationship, error) {
	relationship, err := s.relationshipRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if relationship.TargetID != userID {
		return nil, models.NewForbiddenError("You can only accept connection requests sent to you")
	}
	if relationship.Status == models.RelationshipStatusAccepted {
		return relationship, nil
	}

	if err := s.relationshipRepo.UpdateStatus(ctx, requestID, models.RelationshipStatusAccepted); err != nil {
		return nil, err
	}

	observability.RecordRelationshipTransition(observability.TransitionAccepted)
	return s.relationshipRepo.GetByID(ctx, requestID)
}

// RejectRequest discards a pending connection request addressed to the user.
// A request that no longer exists is treated as already rejected.
func (s *RelationshipService) RejectRequest(ctx context.Context, userID, requestID uint) error {
	relationship, err := s.relationshipRepo.GetByID(ctx, requestID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil
		}
		return err
	}

	if relationship.TargetID != userID {
		return models.NewForbiddenError("You can only reject connection requests sent to you")
	}
	if relationship.Status != models.RelationshipStatusPending {
		return models.NewConflictError("Connection request is not pending")
	}

	if err := s.relationshipRepo.Delete(ctx, relationship.ID); err != nil {
		return err
	}

	observability.RecordRelationshipTransition(observability.TransitionRejected)
	return nil
}

// RemoveConnection deletes whatever relationship row exists between the two
// users. Removing an absent connection is a no-op success.
func (s *RelationshipService) RemoveConnection(ctx context.Context, userID, targetUserID uint) error {
	if userID == targetUserID {
		return models.NewValidationError("Cannot remove a connection with yourself")
	}

	existing, err := s.relationshipRepo.GetBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}

	if err := s.relationshipRepo.RemoveBetweenUsers(ctx, userID, targetUserID); err != nil {
		return err
	}

	observability.RecordRelationshipTransition(observability.TransitionRemoved)
	return nil
}

// ListConnections returns the users connected with the given user.
func (s *RelationshipService) ListConnections(ctx context.Context, userID uint) ([]models.User, error) {
	return s.relationshipRepo.GetConnections(ctx, userID)
}

// ListIncomingRequests returns pending requests addressed to the user, oldest first.
func (s *RelationshipService) ListIncomingRequests(ctx context.Context, userID uint) ([]models.Relationship, error) {
	return s.relationshipRepo.GetIncomingRequests(ctx, userID)
}

// ListSentRequests returns pending requests the user has initiated.
func (s *RelationshipService) ListSentRequests(ctx context.Context, userID uint) ([]models.Relationship, error) {
	return s.relationshipRepo.GetSentRequests(ctx, userID)
}

// CheckStatus returns the relationship state between the user and the target,
// plus the underlying relationship when one exists.
func (s *RelationshipService) CheckStatus(ctx context.Context, userID, targetUserID uint) (models.RelationshipState, *models.Relationship, error) {
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return "", nil, err
	}

	relationship, err := s.relationshipRepo.GetBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return "", nil, err
	}
	if relationship == nil {
		return models.RelationshipStateNone, nil, nil
	}

	return relationship.StateFor(userID), relationship, nil
}
