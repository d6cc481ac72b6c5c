package models

import (
	"time"

	"gorm.io/datatypes"
)

// Post status values. The transition draft -> published is one-directional;
// there is no unpublish.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Validation limits for posts.
const (
	MaxPostTitleLen   = 300
	MaxPostContentLen = 50000
	MaxPostTags       = 10
	MaxPostTagLen     = 64
	MaxPostCategory   = 64
)

// Post is a piece of content authored by a user. Each author has at most one
// draft at a time, enforced by a partial unique index on (author_id) where
// status = 'draft'.
type Post struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	AuthorID uint `gorm:"not null;index;uniqueIndex:idx_posts_author_draft,where:status = 'draft'" json:"author_id"`
	Author   User `gorm:"foreignKey:AuthorID" json:"-"`

	Title         string                      `gorm:"size:300;not null" json:"title"`
	Content       string                      `gorm:"type:text" json:"content"`
	Status        string                      `gorm:"size:16;not null;default:'draft';index" json:"status"`
	Category      string                      `gorm:"size:64" json:"category,omitempty"`
	Tags          datatypes.JSONSlice[string] `json:"tags"`
	FeaturedImage string                      `gorm:"size:512" json:"featured_image,omitempty"`
	// ScheduledFor is a stored timestamp only; nothing fires publication.
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`

	ViewCount int `gorm:"not null;default:0" json:"view_count"`
	LikeCount int `gorm:"not null;default:0" json:"like_count"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	// AuthorUsername is not persisted; annotated on author listings.
	AuthorUsername string `gorm:"-" json:"author_username,omitempty"`
}

// IsPublished reports whether the post is visible to readers.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}
