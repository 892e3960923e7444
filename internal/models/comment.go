package models

import "time"

// MaxCommentContentLen bounds the text content of a comment.
const MaxCommentContentLen = 250

// Comment represents a comment on a post.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	// LikesCount is not persisted; computed at query time
	LikesCount int       `gorm:"->" json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
