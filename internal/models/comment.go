// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post. Comments carry their own LikesCount
// counter, maintained under the same transactional discipline as posts.
type Comment struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Content    string `gorm:"not null" json:"content"`
	UserID     uint   `gorm:"not null;index" json:"user_id"`
	PostID     uint   `gorm:"not null;index" json:"post_id"`
	User       User   `gorm:"foreignKey:UserID" json:"user"`
	Post       Post   `gorm:"foreignKey:PostID" json:"post,omitempty"`
	LikesCount int    `gorm:"not null;default:0" json:"likes_count"`
	// Liked indicates whether the requesting viewer liked this comment (computed per query)
	Liked     bool           `gorm:"-" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
