package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProfileKeyPrefix      = "profile:%s"
	PostCommentsKeyPrefix = "post:%d:comments"
)

const (
	ProfileTTL      = 5 * time.Minute
	PostCommentsTTL = 2 * time.Minute
)

// ProfileKey returns the cache key for a public profile, by username.
func ProfileKey(username string) string {
	return fmt.Sprintf(ProfileKeyPrefix, username)
}

// PostCommentsKey returns the cache key for a post's approved comments.
func PostCommentsKey(postID uint) string {
	return fmt.Sprintf(PostCommentsKeyPrefix, postID)
}

// Invalidate deletes a key. No-op when Redis is unavailable.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateProfile drops the cached public profile for a username.
func InvalidateProfile(ctx context.Context, username string) {
	if username != "" {
		Invalidate(ctx, ProfileKey(username))
	}
}

// InvalidatePostComments drops the cached comment list for a post.
func InvalidatePostComments(ctx context.Context, postID uint) {
	Invalidate(ctx, PostCommentsKey(postID))
}
