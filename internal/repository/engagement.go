// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"musclejourney/internal/cache"
	"musclejourney/internal/models"
	"musclejourney/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var dbMetrics = observability.NewDatabaseMetrics()

// EngagementRepository owns LikeMark membership and the denormalized like
// counters on posts and comments. Every counter mutation happens in the same
// transaction as the LikeMark row change so the counters can never drift from
// true membership, and the conflict-free insert makes repeated likes from the
// same user a no-op instead of a double count.
type EngagementRepository interface {
	Like(ctx context.Context, userID uint, targetType models.LikeTargetType, targetID uint) error
	Unlike(ctx context.Context, userID uint, targetType models.LikeTargetType, targetID uint) error
	HasLiked(ctx context.Context, userID uint, targetType models.LikeTargetType, targetID uint) (bool, error)
	GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error)
	GetLikedCommentIDs(ctx context.Context, userID uint, commentIDs []uint) ([]uint, error)
	DeleteMarksForTarget(tx *gorm.DB, targetType models.LikeTargetType, targetID uint) error
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new EngagementRepository
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) Like(ctx context.Context, userID uint, targetType models.LikeTargetType, targetID uint) error {
	defer dbMetrics.TrackQuery("like", "like_marks")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mark := &models.LikeMark{
			UserID:     userID,
			TargetType: targetType,
			TargetID:   targetID,
		}
		res := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "target_type"}, {Name: "target_id"},
			},
			DoNothing: true,
		}).Create(mark)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			// Already liked; repeated clicks and retried requests land here.
			return nil
		}
		return adjustLikesCount(tx, targetType, targetID, +1)
	})
	if err != nil {
		return err
	}
	invalidateTarget(ctx, targetType, targetID)
	return nil
}

func (r *engagementRepository) Unlike(ctx context.Context, userID uint, targetType models.LikeTargetType, targetID uint) error {
	defer dbMetrics.TrackQuery("unlike", "like_marks")()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND target_type = ? AND target_id = ?",
			userID, targetType, targetID).
			Delete(&models.LikeMark{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			// Nothing to remove; unlike is idempotent.
			return nil
		}
		return adjustLikesCount(tx, targetType, targetID, -1)
	})
	if err != nil {
		return err
	}
	invalidateTarget(ctx, targetType, targetID)
	return nil
}

func (r *engagementRepository) HasLiked(ctx context.Context, userID uint, targetType models.LikeTargetType, targetID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LikeMark{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *engagementRepository) GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error) {
	return r.likedTargetIDs(ctx, userID, models.LikeTargetPost, postIDs)
}

func (r *engagementRepository) GetLikedCommentIDs(ctx context.Context, userID uint, commentIDs []uint) ([]uint, error) {
	return r.likedTargetIDs(ctx, userID, models.LikeTargetComment, commentIDs)
}

func (r *engagementRepository) likedTargetIDs(ctx context.Context, userID uint, targetType models.LikeTargetType, targetIDs []uint) ([]uint, error) {
	if len(targetIDs) == 0 {
		return nil, nil
	}
	var likedIDs []uint
	if err := r.db.WithContext(ctx).
		Model(&models.LikeMark{}).
		Where("user_id = ? AND target_type = ? AND target_id IN ?", userID, targetType, targetIDs).
		Pluck("target_id", &likedIDs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return likedIDs, nil
}

// DeleteMarksForTarget removes every LikeMark pointing at the target inside
// the caller's transaction. Used when a post or comment is deleted; the
// counters on the deleted row go with it, so no adjustment is required.
func (r *engagementRepository) DeleteMarksForTarget(tx *gorm.DB, targetType models.LikeTargetType, targetID uint) error {
	if err := tx.Where("target_type = ? AND target_id = ?", targetType, targetID).
		Delete(&models.LikeMark{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// adjustLikesCount moves the denormalized counter on the target row by delta.
// The decrement clamps at zero in SQL; the single UPDATE serializes concurrent
// toggles on the same row at the database.
func adjustLikesCount(tx *gorm.DB, targetType models.LikeTargetType, targetID uint, delta int) error {
	table := "posts"
	if targetType == models.LikeTargetComment {
		table = "comments"
	}

	var err error
	if delta > 0 {
		err = tx.Exec("UPDATE "+table+" SET likes_count = likes_count + 1 WHERE id = ?", targetID).Error
	} else {
		err = tx.Exec("UPDATE "+table+
			" SET likes_count = CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END WHERE id = ?",
			targetID).Error
	}
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func invalidateTarget(ctx context.Context, targetType models.LikeTargetType, targetID uint) {
	if targetType == models.LikeTargetPost {
		cache.Invalidate(ctx, cache.PostKey(targetID))
		cache.InvalidateFeed(ctx)
	}
}
