// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// AnonymousName is used when the identity provider supplies no display name.
const AnonymousName = "Anonymous"

// User represents a writer or reader resolved from an external identity.
// The record is created on first login (upsert) and never deleted by the API.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// TokenIdentifier is the stable identifier issued by the external auth
	// provider ("<issuer>|<subject>"). At most one user exists per token.
	TokenIdentifier string         `gorm:"size:255;uniqueIndex;not null" json:"-"`
	Name            string         `gorm:"size:128;not null" json:"name"`
	Email           string         `gorm:"size:255" json:"email,omitempty"`
	ImageURL        string         `gorm:"size:512" json:"image_url,omitempty"`
	Username        *string        `gorm:"size:32;uniqueIndex" json:"username,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	LastActiveAt    time.Time      `json:"last_active_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Posts    []Post    `gorm:"foreignKey:AuthorID" json:"-"`
	Comments []Comment `gorm:"foreignKey:AuthorID" json:"-"`
}

// PublicUser is the subset of User exposed on public profile endpoints.
type PublicUser struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicProfile returns the public view of the user.
func (u *User) PublicProfile() *PublicUser {
	username := ""
	if u.Username != nil {
		username = *u.Username
	}
	return &PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Username:  username,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt,
	}
}

// Identity carries the claims presented by the external auth provider for
// the current request. It is attached to the request context by the auth
// middleware; a zero TokenIdentifier means the caller is unauthenticated.
type Identity struct {
	TokenIdentifier string
	Name            string
	Email           string
	PictureURL      string
}

// Authenticated reports whether the identity carries a provider token.
func (i Identity) Authenticated() bool {
	return i.TokenIdentifier != ""
}
