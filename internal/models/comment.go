package models

import "time"

// Comment moderation states. Only approved is produced today; the other
// states are reserved for a moderation queue.
const (
	CommentStatusApproved = "approved"
	CommentStatusPending  = "pending"
	CommentStatusRejected = "rejected"
)

// MaxCommentLen is the maximum trimmed comment length.
const MaxCommentLen = 1000

// Comment represents a reader comment on a published post. AuthorName and
// AuthorEmail are snapshots taken at creation time; later profile edits do
// not rewrite past comments.
type Comment struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	PostID   uint `gorm:"not null;index" json:"post_id"`
	AuthorID uint `gorm:"not null;index" json:"author_id"`

	AuthorName  string `gorm:"size:128" json:"author_name"`
	AuthorEmail string `gorm:"size:255" json:"-"`

	Content   string    `gorm:"size:1000;not null" json:"content"`
	Status    string    `gorm:"size:16;not null;default:'approved';index" json:"status"`
	CreatedAt time.Time `json:"created_at"`

	Author User `gorm:"foreignKey:AuthorID" json:"-"`
	Post   Post `gorm:"foreignKey:PostID" json:"-"`
}

// CommentWithAuthor joins a comment with a live public view of its author,
// as opposed to the creation-time snapshot stored on the comment itself.
type CommentWithAuthor struct {
	Comment
	Author *PublicUser `json:"author"`
}
