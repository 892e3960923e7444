package models

import "time"

// LikeTargetKind discriminates what a like points at.
type LikeTargetKind string

const (
	// LikeTargetPost marks a like on a post.
	LikeTargetPost LikeTargetKind = "post"
	// LikeTargetComment marks a like on a comment.
	LikeTargetComment LikeTargetKind = "comment"
)

// Valid reports whether k is a known target kind.
func (k LikeTargetKind) Valid() bool {
	return k == LikeTargetPost || k == LikeTargetComment
}

// Like records that a user liked a post or a comment.
// The (user, target kind, target id) combination is unique, so concurrent
// duplicate toggles cannot create a second row.
type Like struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;uniqueIndex:idx_like_user_target" json:"user_id"`
	TargetKind LikeTargetKind `gorm:"type:varchar(10);not null;uniqueIndex:idx_like_user_target" json:"target_kind"`
	TargetID   uint           `gorm:"not null;index;uniqueIndex:idx_like_user_target" json:"target_id"`
	CreatedAt  time.Time      `json:"created_at"`
}
