package service

import (
	"context"

	"musclejourney/internal/models"
	"musclejourney/internal/observability"
	"musclejourney/internal/repository"
)

// EngagementService provides like/unlike business logic over posts and
// comments. Both operations are idempotent: repeating one never moves a
// counter twice.
type EngagementService struct {
	engagementRepo repository.EngagementRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(
	engagementRepo repository.EngagementRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *EngagementService {
	return &EngagementService{
		engagementRepo: engagementRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
	}
}

// LikePost records the user's like on the post and returns the refreshed post.
func (s *EngagementService) LikePost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.toggle(ctx, userID, models.LikeTargetPost, postID, true); err != nil {
		return nil, err
	}
	return s.annotatedPost(ctx, userID, postID)
}

// UnlikePost removes the user's like from the post and returns the refreshed post.
func (s *EngagementService) UnlikePost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.toggle(ctx, userID, models.LikeTargetPost, postID, false); err != nil {
		return nil, err
	}
	return s.annotatedPost(ctx, userID, postID)
}

// LikeComment records the user's like on the comment and returns the refreshed comment.
func (s *EngagementService) LikeComment(ctx context.Context, userID, commentID uint) (*models.Comment, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}
	if err := s.toggle(ctx, userID, models.LikeTargetComment, commentID, true); err != nil {
		return nil, err
	}
	return s.annotatedComment(ctx, userID, commentID)
}

// UnlikeComment removes the user's like from the comment and returns the refreshed comment.
func (s *EngagementService) UnlikeComment(ctx context.Context, userID, commentID uint) (*models.Comment, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}
	if err := s.toggle(ctx, userID, models.LikeTargetComment, commentID, false); err != nil {
		return nil, err
	}
	return s.annotatedComment(ctx, userID, commentID)
}

// HasLiked reports whether the user has an active like on the target.
func (s *EngagementService) HasLiked(ctx context.Context, userID uint, targetType models.LikeTargetType, targetID uint) (bool, error) {
	return s.engagementRepo.HasLiked(ctx, userID, targetType, targetID)
}

func (s *EngagementService) toggle(ctx context.Context, userID uint, targetType models.LikeTargetType, targetID uint, like bool) error {
	// The metric's applied/noop split is advisory; the repository decides
	// idempotence authoritatively inside its transaction.
	already, err := s.engagementRepo.HasLiked(ctx, userID, targetType, targetID)
	if err != nil {
		return err
	}

	if like {
		if err := s.engagementRepo.Like(ctx, userID, targetType, targetID); err != nil {
			return err
		}
		observability.RecordEngagementOp("like", string(targetType), !already)
		return nil
	}

	if err := s.engagementRepo.Unlike(ctx, userID, targetType, targetID); err != nil {
		return err
	}
	observability.RecordEngagementOp("unlike", string(targetType), already)
	return nil
}

func (s *EngagementService) annotatedPost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	liked, err := s.engagementRepo.HasLiked(ctx, userID, models.LikeTargetPost, postID)
	if err != nil {
		return nil, err
	}
	post.Liked = liked
	return post, nil
}

func (s *EngagementService) annotatedComment(ctx context.Context, userID, commentID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	liked, err := s.engagementRepo.HasLiked(ctx, userID, models.LikeTargetComment, commentID)
	if err != nil {
		return nil, err
	}
	comment.Liked = liked
	return comment, nil
}
