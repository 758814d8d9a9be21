// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"musclejourney/internal/cache"
	"musclejourney/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines read operations over the externally-owned user
// profile snapshots. The core never creates or mutates identities; Create and
// Update exist for seeding and the external identity sync only.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	// Suggestions returns up to limit users who are neither the given user nor
	// a counterpart of any active relationship (pending or accepted, either
	// direction). Ordered by ascending id so repeated calls with unchanged
	// state return the same slice.
	Suggestions(ctx context.Context, userID uint, limit int) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User

	key := cache.UserKey(id)
	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", username)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Suggestions(ctx context.Context, userID uint, limit int) ([]models.User, error) {
	var users []models.User

	// Exclusions are recomputed from the relationships table on every call;
	// suggestions must never drift from the relationship store.
	if err := r.db.WithContext(ctx).
		Where("users.id != ?", userID).
		Where(`NOT EXISTS (
			SELECT 1 FROM relationships rel
			WHERE (rel.initiator_id = ? AND rel.target_id = users.id)
			   OR (rel.target_id = ? AND rel.initiator_id = users.id)
		)`, userID, userID).
		Order("users.id ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
