package service

import (
	"context"
	"fmt"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/security"
)

// CommentService manages comments on published posts.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	sanitizer   *security.ContentSanitizer
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, userRepo repository.UserRepository, sanitizer *security.ContentSanitizer) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		sanitizer:   sanitizer,
	}
}

func (s *CommentService) resolveUser(ctx context.Context, identity models.Identity) (*models.User, error) {
	if !identity.Authenticated() {
		return nil, models.NewUnauthenticatedError("")
	}
	user, err := s.userRepo.GetByToken(ctx, identity.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthenticatedError("User not found")
	}
	return user, nil
}

// Add creates an approved comment on a published post. The commenter's
// name and email are snapshotted onto the comment at creation time.
func (s *CommentService) Add(ctx context.Context, identity models.Identity, postID uint, content string) (*models.Comment, error) {
	ctx, span := observability.GetTraceLayer().TraceServiceMethod(ctx, "CommentService", "Add")
	defer span.End()

	user, err := s.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished() {
		// Unpublished posts read as missing so their existence is not leaked.
		return nil, models.NewNotFoundError("Post", postID)
	}

	content = strings.TrimSpace(s.sanitizer.Sanitize(content))
	if content == "" {
		return nil, models.NewValidationError("Comment cannot be empty")
	}
	if len(content) > models.MaxCommentLen {
		return nil, models.NewValidationError(fmt.Sprintf("Comment too long (max %d characters)", models.MaxCommentLen))
	}

	comment := &models.Comment{
		PostID:      postID,
		AuthorID:    user.ID,
		AuthorName:  user.Name,
		AuthorEmail: user.Email,
		Content:     content,
		Status:      models.CommentStatusApproved,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	observability.CommentsCreatedTotal.Inc()
	return comment, nil
}

// ListForPost returns the approved comments of a post oldest first,
// each joined with the live author profile. Comments whose author no
// longer resolves are dropped. Results are served through the cache.
func (s *CommentService) ListForPost(ctx context.Context, postID uint) ([]models.CommentWithAuthor, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	return cache.Aside(ctx, cache.PostCommentsKey(postID), cache.PostCommentsTTL, func() ([]models.CommentWithAuthor, error) {
		comments, err := s.commentRepo.ListApprovedByPost(ctx, postID)
		if err != nil {
			return nil, err
		}

		out := make([]models.CommentWithAuthor, 0, len(comments))
		for _, c := range comments {
			if c.Author.ID == 0 {
				continue
			}
			out = append(out, models.CommentWithAuthor{
				Comment: c,
				Author:  c.Author.PublicProfile(),
			})
		}
		return out, nil
	})
}

// Delete removes a comment. Allowed for the comment author and for the
// author of the post the comment is on.
func (s *CommentService) Delete(ctx context.Context, identity models.Identity, commentID uint) error {
	user, err := s.resolveUser(ctx, identity)
	if err != nil {
		return err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != user.ID {
		post, err := s.postRepo.GetByID(ctx, comment.PostID)
		if err != nil {
			return err
		}
		if post.AuthorID != user.ID {
			return models.NewForbiddenError("Not authorized to delete this comment")
		}
	}

	return s.commentRepo.Delete(ctx, commentID)
}
