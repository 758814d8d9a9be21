// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a post in a user's feed. LikesCount and CommentsCount are
// denormalized counters; LikeMark and Comment rows remain the source of truth
// and the counters move only inside the same transaction as the backing row.
type Post struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Content       string `gorm:"type:text;not null" json:"content"`
	ImageURL      string `json:"image_url"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	User          User   `gorm:"foreignKey:UserID" json:"user"`
	LikesCount    int    `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int    `gorm:"not null;default:0" json:"comments_count"`
	// Liked indicates whether the requesting viewer liked this post (computed per query)
	Liked     bool           `gorm:"-" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
