// Package seed populates the database with demo data for development and
// testing. Likes and comments go through the repository layer so every
// denormalized counter stays consistent with its backing rows.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"musclejourney/internal/models"
	"musclejourney/internal/repository"

	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder creates demo users, relationships, posts, comments and likes.
type Seeder struct {
	db             *gorm.DB
	userRepo       repository.UserRepository
	relRepo        repository.RelationshipRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	engagementRepo repository.EngagementRepository
	rng            *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:             db,
		userRepo:       repository.NewUserRepository(db),
		relRepo:        repository.NewRelationshipRepository(db),
		postRepo:       repository.NewPostRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		engagementRepo: repository.NewEngagementRepository(db),
		rng:            rand.New(rand.NewSource(rand.Int63())),
	}
}

// ClearAll removes every seeded row. Order matters: dependent rows first.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"like_marks", "comments", "posts", "relationships", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds the database according to opts.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 50
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 200
	}

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.createUsers(ctx, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	relationships, err := s.createRelationships(ctx, users)
	if err != nil {
		return fmt.Errorf("create relationships: %w", err)
	}
	log.Printf("✓ %d relationships created", relationships)

	posts, err := s.createPosts(ctx, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	comments, err := s.createComments(ctx, users, posts)
	if err != nil {
		return fmt.Errorf("create comments: %w", err)
	}
	log.Printf("✓ %d comments created", comments)

	likes, err := s.createLikes(ctx, users, posts)
	if err != nil {
		return fmt.Errorf("create likes: %w", err)
	}
	log.Printf("✓ %d likes created", likes)

	return nil
}

func (s *Seeder) createUsers(ctx context.Context, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user := fakeUser(i)
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// createRelationships links random pairs; roughly two thirds get accepted so
// feeds and suggestion lists both have material to work with.
func (s *Seeder) createRelationships(ctx context.Context, users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	target := len(users) * 2
	created := 0
	for attempts := 0; created < target && attempts < target*4; attempts++ {
		a := users[s.rng.Intn(len(users))]
		b := users[s.rng.Intn(len(users))]
		if a.ID == b.ID {
			continue
		}

		existing, err := s.relRepo.GetBetweenUsers(ctx, a.ID, b.ID)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}

		rel := &models.Relationship{
			InitiatorID: a.ID,
			TargetID:    b.ID,
			Status:      models.RelationshipStatusPending,
		}
		if err := s.relRepo.Create(ctx, rel); err != nil {
			return created, err
		}
		if s.rng.Intn(3) != 0 {
			if err := s.relRepo.UpdateStatus(ctx, rel.ID, models.RelationshipStatusAccepted); err != nil {
				return created, err
			}
		}
		created++
	}
	return created, nil
}

func (s *Seeder) createPosts(ctx context.Context, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.rng.Intn(len(users))]
		post := fakePost(s.rng, author.ID)
		if err := s.postRepo.Create(ctx, post); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) createComments(ctx context.Context, users []*models.User, posts []*models.Post) (int, error) {
	created := 0
	for _, post := range posts {
		for i := s.rng.Intn(4); i > 0; i-- {
			commenter := users[s.rng.Intn(len(users))]
			comment := &models.Comment{
				UserID:  commenter.ID,
				PostID:  post.ID,
				Content: fakeCommentContent(s.rng),
			}
			if err := s.commentRepo.Create(ctx, comment); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func (s *Seeder) createLikes(ctx context.Context, users []*models.User, posts []*models.Post) (int, error) {
	created := 0
	for _, post := range posts {
		for i := s.rng.Intn(6); i > 0; i-- {
			liker := users[s.rng.Intn(len(users))]
			// Like is idempotent, so a repeated pick is harmless.
			if err := s.engagementRepo.Like(ctx, liker.ID, models.LikeTargetPost, post.ID); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}
