// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"musclejourney/internal/models"
	"musclejourney/internal/observability"

	"gorm.io/gorm"
)

// RelationshipRepository defines the interface for relationship data operations
type RelationshipRepository interface {
	Create(ctx context.Context, relationship *models.Relationship) error
	GetByID(ctx context.Context, id uint) (*models.Relationship, error)
	GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Relationship, error)
	GetConnections(ctx context.Context, userID uint) ([]models.User, error)
	GetIncomingRequests(ctx context.Context, userID uint) ([]models.Relationship, error)
	GetSentRequests(ctx context.Context, userID uint) ([]models.Relationship, error)
	UpdateStatus(ctx context.Context, relationshipID uint, status models.RelationshipStatus) error
	Delete(ctx context.Context, relationshipID uint) error
	RemoveBetweenUsers(ctx context.Context, userID1, userID2 uint) error
}

// relationshipRepository implements RelationshipRepository
type relationshipRepository struct {
	db     *gorm.DB
	logger *observability.RepoLogger
}

// NewRelationshipRepository creates a new relationship repository
func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &relationshipRepository{db: db, logger: observability.NewRepoLogger("relationships")}
}

func (r *relationshipRepository) Create(ctx context.Context, relationship *models.Relationship) error {
	if err := r.db.WithContext(ctx).Create(relationship).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// The pair unique index caught a concurrent insert the service
			// pre-check missed.
			return models.NewConflictError("An active relationship already exists between these users")
		}
		r.logger.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	return nil
}

func (r *relationshipRepository) GetByID(ctx context.Context, id uint) (*models.Relationship, error) {
	var relationship models.Relationship
	if err := r.db.WithContext(ctx).
		Preload("Initiator").
		Preload("Target").
		First(&relationship, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Relationship", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &relationship, nil
}

func (r *relationshipRepository) GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.Relationship, error) {
	var relationship models.Relationship

	// Find the active row for the pair regardless of direction.
	if err := r.db.WithContext(ctx).
		Where("(initiator_id = ? AND target_id = ?) OR (initiator_id = ? AND target_id = ?)",
			userID1, userID2, userID2, userID1).
		Preload("Initiator").
		Preload("Target").
		First(&relationship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // no active relationship
		}
		return nil, models.NewInternalError(err)
	}
	return &relationship, nil
}

func (r *relationshipRepository) GetConnections(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User

	// All counterparts of accepted relationships involving the user.
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN relationships rel ON (users.id = rel.initiator_id OR users.id = rel.target_id)").
		Where("rel.status = ? AND (rel.initiator_id = ? OR rel.target_id = ?) AND users.id != ?",
			models.RelationshipStatusAccepted, userID, userID, userID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return users, nil
}

func (r *relationshipRepository) GetIncomingRequests(ctx context.Context, userID uint) ([]models.Relationship, error) {
	var relationships []models.Relationship

	// Oldest first, matching first-come display order.
	if err := r.db.WithContext(ctx).
		Where("target_id = ? AND status = ?", userID, models.RelationshipStatusPending).
		Preload("Initiator").
		Preload("Target").
		Order("created_at ASC").
		Find(&relationships).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return relationships, nil
}

func (r *relationshipRepository) GetSentRequests(ctx context.Context, userID uint) ([]models.Relationship, error) {
	var relationships []models.Relationship

	if err := r.db.WithContext(ctx).
		Where("initiator_id = ? AND status = ?", userID, models.RelationshipStatusPending).
		Preload("Initiator").
		Preload("Target").
		Order("created_at ASC").
		Find(&relationships).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return relationships, nil
}

func (r *relationshipRepository) UpdateStatus(ctx context.Context, relationshipID uint, status models.RelationshipStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Relationship{}).
		Where("id = ?", relationshipID).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *relationshipRepository) Delete(ctx context.Context, relationshipID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Relationship{}, relationshipID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *relationshipRepository) RemoveBetweenUsers(ctx context.Context, userID1, userID2 uint) error {
	// Deleting zero rows is fine; remove is idempotent by contract.
	if err := r.db.WithContext(ctx).
		Where("(initiator_id = ? AND target_id = ?) OR (initiator_id = ? AND target_id = ?)",
			userID1, userID2, userID2, userID1).
		Delete(&models.Relationship{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
