// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// DefaultAvatarURL is assigned to new accounts until they upload an image.
const DefaultAvatarURL = "https://res.cloudinary.com/wenje/image/upload/standard-user-image.png"

// DefaultAvatarPublicID identifies the shared default avatar in the image store.
// It must never be released when a user replaces or deletes their image.
const DefaultAvatarPublicID = "standard-user-image"

// User represents an account in the Wenje application.
//
// Credential material (password hash, reset token data) is write-only and
// never serialized to clients.
type User struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	Name                string     `gorm:"not null" json:"name"`
	Email               string     `gorm:"unique;not null" json:"email"`
	PasswordHash        string     `gorm:"not null" json:"-"`
	PasswordChangedAt   *time.Time `json:"-"`
	ResetTokenHash      string     `gorm:"index" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	Bio                 string     `gorm:"default:'New Member'" json:"bio"`
	Country             string     `gorm:"default:'Earth'" json:"country"`
	ImageURL            string     `json:"image_url"`
	ImagePublicID       string     `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	// Following and Followers are derived from the follows edge table at
	// read time; they are never written through this struct.
	Following []UserSummary `gorm:"-" json:"following,omitempty"`
	Followers []UserSummary `gorm:"-" json:"followers,omitempty"`
}

// UserSummary is the public projection of a user embedded in follow lists,
// search results and post authorship.
type UserSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Bio      string `json:"bio,omitempty"`
	Country  string `json:"country,omitempty"`
	ImageURL string `json:"image_url"`
}

// Summary returns the public projection of u.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		Bio:      u.Bio,
		Country:  u.Country,
		ImageURL: u.ImageURL,
	}
}

// PasswordChangedAfter reports whether the password was changed after the
// given moment. Tokens issued before a password change must be rejected.
func (u *User) PasswordChangedAfter(t time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.After(t)
}
