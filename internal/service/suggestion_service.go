package service

import (
	"context"

	"musclejourney/internal/models"
	"musclejourney/internal/repository"
)

const (
	defaultSuggestionLimit = 20
	maxSuggestionLimit     = 100
)

// SuggestionService recommends users to connect with. Candidates are
// recomputed from relationship state on every call, so a suggestion
// disappears the moment a request involving that user is created.
type SuggestionService struct {
	userRepo repository.UserRepository
}

// NewSuggestionService returns a new SuggestionService.
func NewSuggestionService(userRepo repository.UserRepository) *SuggestionService {
	return &SuggestionService{userRepo: userRepo}
}

// Suggest returns up to limit users with no active relationship to the given
// user in either direction. Zero or negative limits fall back to the default.
func (s *SuggestionService) Suggest(ctx context.Context, userID uint, limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}
	if limit > maxSuggestionLimit {
		limit = maxSuggestionLimit
	}
	return s.userRepo.Suggestions(ctx, userID, limit)
}
