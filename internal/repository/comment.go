// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"musclejourney/internal/cache"
	"musclejourney/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment operations. Create and
// Delete move the parent post's comments_count in the same transaction as the
// comment row, mirroring the like counter discipline.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	Delete(ctx context.Context, id uint, postID uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Exec(
			"UPDATE posts SET comments_count = comments_count + 1 WHERE id = ?",
			comment.PostID).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.Invalidate(ctx, cache.PostKey(comment.PostID))
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// Delete removes the comment, its LikeMarks, and decrements the parent post's
// comments_count, atomically. The decrement clamps at zero.
func (r *commentRepository) Delete(ctx context.Context, id uint, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Comment{}, id)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			// Already gone; a concurrent delete won the race.
			return nil
		}

		if err := tx.Where("target_type = ? AND target_id = ?",
			models.LikeTargetComment, id).
			Delete(&models.LikeMark{}).Error; err != nil {
			return models.NewInternalError(err)
		}

		if err := tx.Exec(
			"UPDATE posts SET comments_count = CASE WHEN comments_count > 0 THEN comments_count - 1 ELSE 0 END WHERE id = ?",
			postID).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.Invalidate(ctx, cache.PostKey(postID))
	cache.InvalidateFeed(ctx)
	return nil
}
