package service

import (
	"context"

	"musclejourney/internal/models"

	"gorm.io/gorm"
)

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	listFn          func(context.Context, int, int) ([]models.User, error)
	suggestionsFn   func(context.Context, uint, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Suggestions(ctx context.Context, userID uint, limit int) ([]models.User, error) {
	return s.suggestionsFn(ctx, userID, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		listFn:          func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		suggestionsFn:   func(context.Context, uint, int) ([]models.User, error) { return nil, nil },
	}
}

type relationshipRepoStub struct {
	createFn              func(context.Context, *models.Relationship) error
	getByIDFn             func(context.Context, uint) (*models.Relationship, error)
	getBetweenUsersFn     func(context.Context, uint, uint) (*models.Relationship, error)
	getConnectionsFn      func(context.Context, uint) ([]models.User, error)
	getIncomingRequestsFn func(context.Context, uint) ([]models.Relationship, error)
	getSentRequestsFn     func(context.Context, uint) ([]models.Relationship, error)
	updateStatusFn        func(context.Context, uint, models.RelationshipStatus) error
	deleteFn              func(context.Context, uint) error
	removeBetweenUsersFn  func(context.Context, uint, uint) error
}

func (s *relationshipRepoStub) Create(ctx context.Context, relationship *models.Relationship) error {
	return s.createFn(ctx, relationship)
}
func (s *relationshipRepoStub) GetByID(ctx context.Context, id uint) (*models.Relationship, error) {
	return s.getByIDFn(ctx, id)
}
func (s *relationshipRepoStub) GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Relationship, error) {
	return s.getBetweenUsersFn(ctx, userID1, userID2)
}
func (s *relationshipRepoStub) GetConnections(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getConnectionsFn(ctx, userID)
}
func (s *relationshipRepoStub) GetIncomingRequests(ctx context.Context, userID uint) ([]models.Relationship, error) {
	return s.getIncomingRequestsFn(ctx, userID)
}
func (s *relationshipRepoStub) GetSentRequests(ctx context.Context, userID uint) ([]models.Relationship, error) {
	return s.getSentRequestsFn(ctx, userID)
}
func (s *relationshipRepoStub) UpdateStatus(ctx context.Context, relationshipID uint, status models.RelationshipStatus) error {
	return s.updateStatusFn(ctx, relationshipID, status)
}
func (s *relationshipRepoStub) Delete(ctx context.Context, relationshipID uint) error {
	return s.deleteFn(ctx, relationshipID)
}
func (s *relationshipRepoStub) RemoveBetweenUsers(ctx context.Context, userID1, userID2 uint) error {
	return s.removeBetweenUsersFn(ctx, userID1, userID2)
}

func noopRelationshipRepo() *relationshipRepoStub {
	return &relationshipRepoStub{
		createFn:              func(context.Context, *models.Relationship) error { return nil },
		getByIDFn:             func(context.Context, uint) (*models.Relationship, error) { return &models.Relationship{}, nil },
		getBetweenUsersFn:     func(context.Context, uint, uint) (*models.Relationship, error) { return nil, nil },
		getConnectionsFn:      func(context.Context, uint) ([]models.User, error) { return nil, nil },
		getIncomingRequestsFn: func(context.Context, uint) ([]models.Relationship, error) { return nil, nil },
		getSentRequestsFn:     func(context.Context, uint) ([]models.Relationship, error) { return nil, nil },
		updateStatusFn:        func(context.Context, uint, models.RelationshipStatus) error { return nil },
		deleteFn:              func(context.Context, uint) error { return nil },
		removeBetweenUsersFn:  func(context.Context, uint, uint) error { return nil },
	}
}

type postRepoStub struct {
	createFn     func(context.Context, *models.Post) error
	getByIDFn    func(context.Context, uint) (*models.Post, error)
	listFeedFn   func(context.Context, int, int) ([]*models.Post, error)
	listByUserFn func(context.Context, uint, int, int) ([]*models.Post, error)
	deleteFn     func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListFeed(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listFeedFn(ctx, limit, offset)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:     func(context.Context, *models.Post) error { return nil },
		getByIDFn:    func(context.Context, uint) (*models.Post, error) { return &models.Post{}, nil },
		listFeedFn:   func(context.Context, int, int) ([]*models.Post, error) { return nil, nil },
		listByUserFn: func(context.Context, uint, int, int) ([]*models.Post, error) { return nil, nil },
		deleteFn:     func(context.Context, uint) error { return nil },
	}
}

type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	deleteFn     func(context.Context, uint, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint, postID uint) error {
	return s.deleteFn(ctx, id, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(context.Context, *models.Comment) error { return nil },
		getByIDFn:    func(context.Context, uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn: func(context.Context, uint) ([]*models.Comment, error) { return nil, nil },
		deleteFn:     func(context.Context, uint, uint) error { return nil },
	}
}

type engagementRepoStub struct {
	likeFn                 func(context.Context, uint, models.LikeTargetType, uint) error
	unlikeFn               func(context.Context, uint, models.LikeTargetType, uint) error
	hasLikedFn             func(context.Context, uint, models.LikeTargetType, uint) (bool, error)
	getLikedPostIDsFn      func(context.Context, uint, []uint) ([]uint, error)
	getLikedCommentIDsFn   func(context.Context, uint, []uint) ([]uint, error)
	deleteMarksForTargetFn func(*gorm.DB, models.LikeTargetType, uint) error
}

func (s *engagementRepoStub) Like(ctx context.Context, userID uint, targetType models.LikeTargetType, targetID uint) error {
	return s.likeFn(ctx, userID, targetType, targetID)
}
func (s *engagementRepoStub) Unlike(ctx context.Context, userID uint, targetType models.LikeTargetType, targetID uint) error {
	return s.unlikeFn(ctx, userID, targetType, targetID)
}
func (s *engagementRepoStub) HasLiked(ctx context.Context, userID uint, targetType models.LikeTargetType, targetID uint) (bool, error) {
	return s.hasLikedFn(ctx, userID, targetType, targetID)
}
func (s *engagementRepoStub) GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error) {
	return s.getLikedPostIDsFn(ctx, userID, postIDs)
}
func (s *engagementRepoStub) GetLikedCommentIDs(ctx context.Context, userID uint, commentIDs []uint) ([]uint, error) {
	return s.getLikedCommentIDsFn(ctx, userID, commentIDs)
}
func (s *engagementRepoStub) DeleteMarksForTarget(tx *gorm.DB, targetType models.LikeTargetType, targetID uint) error {
	return s.deleteMarksForTargetFn(tx, targetType, targetID)
}

func noopEngagementRepo() *engagementRepoStub {
	return &engagementRepoStub{
		likeFn:                 func(context.Context, uint, models.LikeTargetType, uint) error { return nil },
		unlikeFn:               func(context.Context, uint, models.LikeTargetType, uint) error { return nil },
		hasLikedFn:             func(context.Context, uint, models.LikeTargetType, uint) (bool, error) { return false, nil },
		getLikedPostIDsFn:      func(context.Context, uint, []uint) ([]uint, error) { return nil, nil },
		getLikedCommentIDsFn:   func(context.Context, uint, []uint) ([]uint, error) { return nil, nil },
		deleteMarksForTargetFn: func(*gorm.DB, models.LikeTargetType, uint) error { return nil },
	}
}
