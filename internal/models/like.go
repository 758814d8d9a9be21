package models

import "time"

// LikeTargetType identifies what kind of object a LikeMark points at.
type LikeTargetType string

const (
	// LikeTargetPost marks a like on a post.
	LikeTargetPost LikeTargetType = "post"
	// LikeTargetComment marks a like on a comment.
	LikeTargetComment LikeTargetType = "comment"
)

// LikeMark is the existence-only record of one user's like on one target.
// The (user_id, target_type, target_id) tuple is unique; the denormalized
// counters on posts and comments are a projection of these rows and are only
// ever mutated in the same transaction as a LikeMark insert or delete.
type LikeMark struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;uniqueIndex:idx_like_user_target" json:"user_id"`
	TargetType LikeTargetType `gorm:"type:varchar(10);not null;uniqueIndex:idx_like_user_target" json:"target_type"`
	TargetID   uint           `gorm:"not null;uniqueIndex:idx_like_user_target" json:"target_id"`
	CreatedAt  time.Time      `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (LikeMark) TableName() string {
	return "like_marks"
}
