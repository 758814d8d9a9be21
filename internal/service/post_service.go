package service

import (
	"context"
	"strings"
	"time"

	"musclejourney/internal/cache"
	"musclejourney/internal/models"
	"musclejourney/internal/observability"
	"musclejourney/internal/repository"
	"musclejourney/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

// PostService provides post lifecycle and feed composition business logic.
type PostService struct {
	postRepo       repository.PostRepository
	engagementRepo repository.EngagementRepository
}

// CreatePostInput carries the fields for creating a post.
type CreatePostInput struct {
	UserID   uint
	Content  string
	ImageURL string
}

// FeedInput carries feed pagination and the viewer identity.
type FeedInput struct {
	ViewerID uint
	Limit    int
	Offset   int
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, engagementRepo repository.EngagementRepository) *PostService {
	return &PostService{
		postRepo:       postRepo,
		engagementRepo: engagementRepo,
	}
}

// CreatePost validates and stores a new post for the user.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	content, err := validation.PostContent(in.Content)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		Content:  content,
		ImageURL: strings.TrimSpace(in.ImageURL),
		UserID:   in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns a single post annotated with the viewer's like state.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.annotateLiked(ctx, viewerID, []*models.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// ComposeFeed returns the global feed page for the viewer, newest first. The
// raw page may be served from cache; the viewer's like state is recomputed on
// every call so it can never go stale.
func (s *PostService) ComposeFeed(ctx context.Context, in FeedInput) ([]*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.ComposeFeed")
	defer span.End()

	start := time.Now()
	defer func() {
		observability.FeedComposeLatency.Observe(time.Since(start).Seconds())
	}()

	limit, offset := clampPage(in.Limit, in.Offset)
	span.AddAttributes(
		attribute.Int("feed.limit", limit),
		attribute.Int("feed.offset", offset),
	)

	var posts []*models.Post
	key := cache.FeedKey(limit, offset)
	err := cache.Aside(ctx, key, &posts, cache.FeedTTL, func() error {
		var fetchErr error
		posts, fetchErr = s.postRepo.ListFeed(ctx, limit, offset)
		return fetchErr
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	if err := s.annotateLiked(ctx, in.ViewerID, posts); err != nil {
		span.SetError(err)
		return nil, err
	}
	return posts, nil
}

// GetUserPosts returns one user's posts, newest first, viewer-annotated.
func (s *PostService) GetUserPosts(ctx context.Context, userID uint, in FeedInput) ([]*models.Post, error) {
	limit, offset := clampPage(in.Limit, in.Offset)

	posts, err := s.postRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.annotateLiked(ctx, in.ViewerID, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost removes the user's own post along with its comments and like marks.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	return s.postRepo.Delete(ctx, postID)
}

// annotateLiked sets Liked on each post for the viewer in one query.
func (s *PostService) annotateLiked(ctx context.Context, viewerID uint, posts []*models.Post) error {
	if viewerID == 0 || len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	likedIDs, err := s.engagementRepo.GetLikedPostIDs(ctx, viewerID, postIDs)
	if err != nil {
		return err
	}

	likedMap := make(map[uint]bool, len(likedIDs))
	for _, id := range likedIDs {
		likedMap[id] = true
	}
	for _, p := range posts {
		p.Liked = likedMap[p.ID]
	}
	return nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
