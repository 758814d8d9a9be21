package service

import (
	"context"

	"musclejourney/internal/models"
	"musclejourney/internal/repository"
)

// UserService provides read access to user profile snapshots. Identity is
// owned by the upstream account service; only the projection lives here.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns the profile snapshot for the given user id.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// GetProfileByUsername returns the profile snapshot for the given username.
func (s *UserService) GetProfileByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}
