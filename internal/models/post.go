package models

import "time"

// MaxPostContentLen bounds the text content of a post.
const MaxPostContentLen = 500

// Post represents a post in the Wenje application.
//
// Posts are hard-deleted: the cascade coordinator removes dependent comments
// and likes, so a soft-delete marker would leave them resurrectable but
// orphaned.
type Post struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	AuthorID      uint   `gorm:"not null;index" json:"author_id"`
	Author        User   `gorm:"foreignKey:AuthorID" json:"author"`
	Content       string `gorm:"type:text" json:"content"`
	ImageURL      string `json:"image_url,omitempty"`
	ImagePublicID string `json:"-"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// LikedByIDs holds the ids of users who liked this post (computed)
	LikedByIDs []uint    `gorm:"-" json:"liked_by_ids,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
