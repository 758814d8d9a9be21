package repository

import (
	"context"
	"sync"
	"testing"

	"gorm.io/gorm"

	"musclejourney/internal/cache"
	"musclejourney/internal/models"
)

func seedPost(t *testing.T, db *gorm.DB, userID uint) *models.Post {
	t.Helper()
	post := &models.Post{UserID: userID, Content: "test post"}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return post
}

func reloadPost(t *testing.T, db *gorm.DB, id uint) *models.Post {
	t.Helper()
	var post models.Post
	if err := db.First(&post, id).Error; err != nil {
		t.Fatalf("failed to reload post: %v", err)
	}
	return &post
}

func TestEngagementRepository_LikeIsIdempotent(t *testing.T) {
	tx := testTx(t)
	cache.SetClient(nil)
	repo := NewEngagementRepository(tx)
	ctx := context.Background()

	author := seedUser(t, tx)
	liker := seedUser(t, tx)
	post := seedPost(t, tx, author.ID)

	for i := 0; i < 3; i++ {
		if err := repo.Like(ctx, liker.ID, models.LikeTargetPost, post.ID); err != nil {
			t.Fatalf("like %d failed: %v", i, err)
		}
	}

	if got := reloadPost(t, tx, post.ID).LikesCount; got != 1 {
		t.Fatalf("expected likes_count=1 after repeated likes, got %d", got)
	}

	liked, err := repo.HasLiked(ctx, liker.ID, models.LikeTargetPost, post.ID)
	if err != nil || !liked {
		t.Fatalf("expected HasLiked true, got %v err=%v", liked, err)
	}
}

func TestEngagementRepository_UnlikeClampsAtZero(t *testing.T) {
	tx := testTx(t)
	cache.SetClient(nil)
	repo := NewEngagementRepository(tx)
	ctx := context.Background()

	author := seedUser(t, tx)
	liker := seedUser(t, tx)
	post := seedPost(t, tx, author.ID)

	// Unlike with no prior like is a no-op.
	if err := repo.Unlike(ctx, liker.ID, models.LikeTargetPost, post.ID); err != nil {
		t.Fatalf("unlike without mark failed: %v", err)
	}
	if got := reloadPost(t, tx, post.ID).LikesCount; got != 0 {
		t.Fatalf("expected likes_count=0, got %d", got)
	}

	if err := repo.Like(ctx, liker.ID, models.LikeTargetPost, post.ID); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := repo.Unlike(ctx, liker.ID, models.LikeTargetPost, post.ID); err != nil {
			t.Fatalf("unlike %d failed: %v", i, err)
		}
	}
	if got := reloadPost(t, tx, post.ID).LikesCount; got != 0 {
		t.Fatalf("expected likes_count clamped at 0, got %d", got)
	}
}

func TestEngagementRepository_CommentLikes(t *testing.T) {
	tx := testTx(t)
	cache.SetClient(nil)
	repo := NewEngagementRepository(tx)
	commentRepo := NewCommentRepository(tx)
	ctx := context.Background()

	author := seedUser(t, tx)
	liker := seedUser(t, tx)
	post := seedPost(t, tx, author.ID)

	comment := &models.Comment{UserID: author.ID, PostID: post.ID, Content: "note"}
	if err := commentRepo.Create(ctx, comment); err != nil {
		t.Fatalf("create comment failed: %v", err)
	}

	if err := repo.Like(ctx, liker.ID, models.LikeTargetComment, comment.ID); err != nil {
		t.Fatalf("like comment failed: %v", err)
	}

	var stored models.Comment
	if err := tx.First(&stored, comment.ID).Error; err != nil {
		t.Fatalf("reload comment failed: %v", err)
	}
	if stored.LikesCount != 1 {
		t.Fatalf("expected comment likes_count=1, got %d", stored.LikesCount)
	}

	likedIDs, err := repo.GetLikedCommentIDs(ctx, liker.ID, []uint{comment.ID})
	if err != nil || len(likedIDs) != 1 || likedIDs[0] != comment.ID {
		t.Fatalf("expected liked comment id %d, got %v err=%v", comment.ID, likedIDs, err)
	}
}

func TestEngagementRepository_GetLikedPostIDs(t *testing.T) {
	tx := testTx(t)
	cache.SetClient(nil)
	repo := NewEngagementRepository(tx)
	ctx := context.Background()

	author := seedUser(t, tx)
	liker := seedUser(t, tx)
	first := seedPost(t, tx, author.ID)
	second := seedPost(t, tx, author.ID)
	third := seedPost(t, tx, author.ID)

	for _, id := range []uint{first.ID, third.ID} {
		if err := repo.Like(ctx, liker.ID, models.LikeTargetPost, id); err != nil {
			t.Fatalf("like failed: %v", err)
		}
	}

	likedIDs, err := repo.GetLikedPostIDs(ctx, liker.ID, []uint{first.ID, second.ID, third.ID})
	if err != nil {
		t.Fatalf("get liked post ids failed: %v", err)
	}
	if len(likedIDs) != 2 {
		t.Fatalf("expected 2 liked ids, got %v", likedIDs)
	}

	// Empty input short-circuits without touching the database.
	likedIDs, err = repo.GetLikedPostIDs(ctx, liker.ID, nil)
	if err != nil || likedIDs != nil {
		t.Fatalf("expected nil result for empty input, got %v err=%v", likedIDs, err)
	}
}

// Concurrent likes from distinct users must land exactly once each; the
// counter moves inside the same transaction as the mark insert.
func TestEngagementRepository_ConcurrentLikersCountExactly(t *testing.T) {
	cache.SetClient(nil)
	repo := NewEngagementRepository(testDB)
	ctx := context.Background()

	author := seedUser(t, testDB)
	post := seedPost(t, testDB, author.ID)
	t.Cleanup(func() {
		testDB.Where("target_id = ?", post.ID).Delete(&models.LikeMark{})
		testDB.Unscoped().Delete(&models.Post{}, post.ID)
	})

	const likers = 8
	users := make([]*models.User, likers)
	for i := range users {
		users[i] = seedUser(t, testDB)
	}

	var wg sync.WaitGroup
	errs := make(chan error, likers)
	for _, u := range users {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			// Each goroutine likes twice; the second must be a no-op.
			if err := repo.Like(ctx, userID, models.LikeTargetPost, post.ID); err != nil {
				errs <- err
				return
			}
			errs <- repo.Like(ctx, userID, models.LikeTargetPost, post.ID)
		}(u.ID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent like failed: %v", err)
		}
	}

	if got := reloadPost(t, testDB, post.ID).LikesCount; got != likers {
		t.Fatalf("expected likes_count=%d, got %d", likers, got)
	}
}
