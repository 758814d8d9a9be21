// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// RelationshipStatus represents the status of a relationship between two users.
type RelationshipStatus string

const (
	// RelationshipStatusPending indicates a sent but not yet accepted request.
	RelationshipStatusPending RelationshipStatus = "pending"
	// RelationshipStatusAccepted indicates a mutual connection.
	RelationshipStatusAccepted RelationshipStatus = "accepted"
)

// RelationshipState is the state of a pair relative to one of its members,
// as returned by status checks.
type RelationshipState string

const (
	// RelationshipStateNone means no active relationship exists.
	RelationshipStateNone RelationshipState = "none"
	// RelationshipStatePendingOutgoing means the subject sent a pending request.
	RelationshipStatePendingOutgoing RelationshipState = "pending_outgoing"
	// RelationshipStatePendingIncoming means the subject received a pending request.
	RelationshipStatePendingIncoming RelationshipState = "pending_incoming"
	// RelationshipStateConnected means the pair has an accepted relationship.
	RelationshipStateConnected RelationshipState = "connected"
)

// Relationship is a directed connection record between two users. Direction
// (initiator vs target) is preserved so pending requests render correctly on
// both sides; the pair_min/pair_max columns normalize the unordered pair so the
// database enforces at most one active row per pair regardless of direction.
type Relationship struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	InitiatorID uint               `gorm:"not null;index" json:"initiator_id"`
	TargetID    uint               `gorm:"not null;index" json:"target_id"`
	PairMin     uint               `gorm:"not null;uniqueIndex:idx_relationship_pair" json:"-"`
	PairMax     uint               `gorm:"not null;uniqueIndex:idx_relationship_pair" json:"-"`
	Status      RelationshipStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`

	Initiator User `gorm:"foreignKey:InitiatorID" json:"initiator,omitempty"`
	Target    User `gorm:"foreignKey:TargetID" json:"target,omitempty"`
}

// TableName specifies the table name for GORM
func (Relationship) TableName() string {
	return "relationships"
}

// BeforeCreate populates the normalized pair columns backing the
// one-active-row-per-pair unique index.
func (r *Relationship) BeforeCreate(_ *gorm.DB) error {
	r.PairMin, r.PairMax = r.InitiatorID, r.TargetID
	if r.PairMin > r.PairMax {
		r.PairMin, r.PairMax = r.PairMax, r.PairMin
	}
	return nil
}

// OtherUserID returns the counterpart of userID in this relationship.
func (r *Relationship) OtherUserID(userID uint) uint {
	if r.InitiatorID == userID {
		return r.TargetID
	}
	return r.InitiatorID
}

// StateFor returns the relationship state relative to the given user.
func (r *Relationship) StateFor(userID uint) RelationshipState {
	switch r.Status {
	case RelationshipStatusAccepted:
		return RelationshipStateConnected
	case RelationshipStatusPending:
		if r.InitiatorID == userID {
			return RelationshipStatePendingOutgoing
		}
		return RelationshipStatePendingIncoming
	}
	return RelationshipStateNone
}
