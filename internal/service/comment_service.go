package service

import (
	"context"

	"musclejourney/internal/models"
	"musclejourney/internal/observability"
	"musclejourney/internal/repository"
	"musclejourney/internal/validation"
)

// CommentService provides comment business logic. Comment creation and
// deletion move the post's comments_count inside the repository transaction.
type CommentService struct {
	commentRepo    repository.CommentRepository
	postRepo       repository.PostRepository
	engagementRepo repository.EngagementRepository
}

// CreateCommentInput carries the fields for creating a comment.
type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

// NewCommentService returns a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	engagementRepo repository.EngagementRepository,
) *CommentService {
	return &CommentService{
		commentRepo:    commentRepo,
		postRepo:       postRepo,
		engagementRepo: engagementRepo,
	}
}

// CreateComment validates and stores a comment on the post.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	content, err := validation.CommentContent(in.Content)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment := &models.Comment{
		Content: content,
		UserID:  in.UserID,
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	observability.RecordEngagementOp("comment", string(models.LikeTargetPost), true)
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns the post's comments, oldest first, viewer-annotated.
func (s *CommentService) ListComments(ctx context.Context, postID, viewerID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.annotateLiked(ctx, viewerID, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment removes the user's own comment and its like marks.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		return models.NewForbiddenError("You can only delete your own comments")
	}

	return s.commentRepo.Delete(ctx, commentID, comment.PostID)
}

func (s *CommentService) annotateLiked(ctx context.Context, viewerID uint, comments []*models.Comment) error {
	if viewerID == 0 || len(comments) == 0 {
		return nil
	}

	commentIDs := make([]uint, len(comments))
	for i, c := range comments {
		commentIDs[i] = c.ID
	}

	likedIDs, err := s.engagementRepo.GetLikedCommentIDs(ctx, viewerID, commentIDs)
	if err != nil {
		return err
	}

	likedMap := make(map[uint]bool, len(likedIDs))
	for _, id := range likedIDs {
		likedMap[id] = true
	}
	for _, c := range comments {
		c.Liked = likedMap[c.ID]
	}
	return nil
}
