package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/security"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"
)

// PostService manages drafts and published posts.
type PostService struct {
	postRepo  repository.PostRepository
	userRepo  repository.UserRepository
	sanitizer *security.ContentSanitizer
}

// SavePostInput carries the full draft or publish payload. Saving a
// draft replaces the author's single working draft; publishing makes
// the content permanent and visible. Status is "draft" or "published";
// empty means draft.
type SavePostInput struct {
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Category      string     `json:"category"`
	Tags          []string   `json:"tags"`
	FeaturedImage string     `json:"featured_image"`
	ScheduledFor  *time.Time `json:"scheduled_for"`
	Status        string     `json:"status"`
}

func (in SavePostInput) publishing() bool {
	return in.Status == models.PostStatusPublished
}

// UpdatePostInput carries a partial update; nil fields are left as-is.
type UpdatePostInput struct {
	Title         *string    `json:"title"`
	Content       *string    `json:"content"`
	Category      *string    `json:"category"`
	Tags          []string   `json:"tags"`
	FeaturedImage *string    `json:"featured_image"`
	ScheduledFor  *time.Time `json:"scheduled_for"`
	Status        *string    `json:"status"`
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, sanitizer *security.ContentSanitizer) *PostService {
	return &PostService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		sanitizer: sanitizer,
	}
}

func (s *PostService) resolveUser(ctx context.Context, identity models.Identity) (*models.User, error) {
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

func (s *PostService) validateContent(title, content string, tags []string, category string) error {
	if len(title) > models.MaxPostTitleLen {
		return models.NewValidationError(fmt.Sprintf("Title too long (max %d characters)", models.MaxPostTitleLen))
	}
	if len(content) > models.MaxPostContentLen {
		return models.NewValidationError(fmt.Sprintf("Content too long (max %d characters)", models.MaxPostContentLen))
	}
	if len(category) > models.MaxPostCategory {
		return models.NewValidationError("Category too long")
	}
	if len(tags) > models.MaxPostTags {
		return models.NewValidationError(fmt.Sprintf("Too many tags (max %d)", models.MaxPostTags))
	}
	for _, tag := range tags {
		if len(tag) > models.MaxPostTagLen {
			return models.NewValidationError("Tag too long")
		}
	}
	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// GetDraft returns the author's working draft, or nil when none exists.
func (s *PostService) GetDraft(ctx context.Context, identity models.Identity) (*models.Post, error) {
	user, err := s.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	return s.postRepo.GetDraftByAuthor(ctx, user.ID)
}

// Save stores a draft or publishes a post. When the author already has
// a draft, the draft is overwritten rather than duplicated, so each
// author holds at most one draft at a time. Publishing stamps the
// publication time.
func (s *PostService) Save(ctx context.Context, identity models.Identity, in SavePostInput) (post *models.Post, err error) {
	span, ctx := observability.NewSpan(ctx, "PostService.Save")
	span.AddAttributes(attribute.Bool("post.publish", in.publishing()))
	defer func() {
		span.SetError(err)
		span.End()
	}()

	user, err := s.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	switch in.Status {
	case "", models.PostStatusDraft, models.PostStatusPublished:
	default:
		return nil, models.NewValidationError("Invalid status")
	}

	title := strings.TrimSpace(s.sanitizer.SanitizeStrict(in.Title))
	content := s.sanitizer.Sanitize(in.Content)
	category := strings.TrimSpace(s.sanitizer.SanitizeStrict(in.Category))
	tags := normalizeTags(in.Tags)

	if in.publishing() {
		if title == "" {
			return nil, models.NewValidationError("Title is required")
		}
		if strings.TrimSpace(content) == "" {
			return nil, models.NewValidationError("Content is required")
		}
	}
	if err := s.validateContent(title, content, tags, category); err != nil {
		return nil, err
	}

	status := models.PostStatusDraft
	if in.publishing() {
		status = models.PostStatusPublished
	}

	draft, err := s.postRepo.GetDraftByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if draft != nil {
		if err := s.overwriteDraft(ctx, draft.ID, title, content, category, tags, in, status); err != nil {
			return nil, err
		}
		if in.publishing() {
			observability.PostsPublishedTotal.Inc()
		}
		return s.postRepo.GetByID(ctx, draft.ID)
	}

	post = &models.Post{
		AuthorID:      user.ID,
		Title:         title,
		Content:       content,
		Status:        status,
		Category:      category,
		Tags:          datatypes.JSONSlice[string](tags),
		FeaturedImage: in.FeaturedImage,
		ScheduledFor:  in.ScheduledFor,
	}
	if in.publishing() {
		now := nowFunc()
		post.PublishedAt = &now
	}

	err = s.postRepo.Create(ctx, post)
	if err != nil {
		// Two concurrent first saves can race on the draft slot; the
		// loser retries as an overwrite of the winner's draft.
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeConflict && !in.publishing() {
			winner, fetchErr := s.postRepo.GetDraftByAuthor(ctx, user.ID)
			if fetchErr != nil {
				return nil, fetchErr
			}
			if winner != nil {
				if err := s.overwriteDraft(ctx, winner.ID, title, content, category, tags, in, status); err != nil {
					return nil, err
				}
				return s.postRepo.GetByID(ctx, winner.ID)
			}
		}
		return nil, err
	}

	if in.publishing() {
		observability.PostsPublishedTotal.Inc()
	}
	return post, nil
}

func (s *PostService) overwriteDraft(ctx context.Context, draftID uint, title, content, category string, tags []string, in SavePostInput, status string) error {
	fields := map[string]interface{}{
		"title":          title,
		"content":        content,
		"category":       category,
		"tags":           datatypes.JSONSlice[string](tags),
		"featured_image": in.FeaturedImage,
		"scheduled_for":  in.ScheduledFor,
		"status":         status,
		"updated_at":     nowFunc(),
	}
	if status == models.PostStatusPublished {
		fields["published_at"] = nowFunc()
	}
	return s.postRepo.UpdateFields(ctx, draftID, fields)
}

// Update applies a partial edit to an owned post. Moving a draft to
// published stamps the publication time; unpublishing is not allowed.
func (s *PostService) Update(ctx context.Context, identity models.Identity, postID uint, in UpdatePostInput) (*models.Post, error) {
	user, err := s.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != user.ID {
		return nil, models.NewForbiddenError("Not authorized to update this post")
	}

	fields := map[string]interface{}{"updated_at": nowFunc()}

	title := post.Title
	content := post.Content
	category := post.Category
	tags := []string(post.Tags)

	if in.Title != nil {
		title = strings.TrimSpace(s.sanitizer.SanitizeStrict(*in.Title))
		fields["title"] = title
	}
	if in.Content != nil {
		content = s.sanitizer.Sanitize(*in.Content)
		fields["content"] = content
	}
	if in.Category != nil {
		category = strings.TrimSpace(s.sanitizer.SanitizeStrict(*in.Category))
		fields["category"] = category
	}
	if in.Tags != nil {
		tags = normalizeTags(in.Tags)
		fields["tags"] = datatypes.JSONSlice[string](tags)
	}
	if in.FeaturedImage != nil {
		fields["featured_image"] = *in.FeaturedImage
	}
	if in.ScheduledFor != nil {
		fields["scheduled_for"] = *in.ScheduledFor
	}

	publishing := false
	if in.Status != nil && *in.Status != post.Status {
		switch *in.Status {
		case models.PostStatusPublished:
			publishing = true
			fields["status"] = models.PostStatusPublished
			fields["published_at"] = nowFunc()
		case models.PostStatusDraft:
			return nil, models.NewValidationError("A published post cannot return to draft")
		default:
			return nil, models.NewValidationError("Invalid status")
		}
	}

	if publishing {
		if title == "" {
			return nil, models.NewValidationError("Title is required")
		}
		if strings.TrimSpace(content) == "" {
			return nil, models.NewValidationError("Content is required")
		}
	}
	if err := s.validateContent(title, content, tags, category); err != nil {
		return nil, err
	}

	if err := s.postRepo.UpdateFields(ctx, postID, fields); err != nil {
		return nil, err
	}
	if publishing {
		observability.PostsPublishedTotal.Inc()
	}
	return s.postRepo.GetByID(ctx, postID)
}

// ListForAuthor returns the current user's posts newest first, optionally
// filtered by status. An identity with no stored user has no posts.
func (s *PostService) ListForAuthor(ctx context.Context, identity models.Identity, status string) ([]models.Post, error) {
	if !identity.Authenticated() {
		return nil, models.NewUnauthenticatedError("")
	}
	if status != "" && status != models.PostStatusDraft && status != models.PostStatusPublished {
		return nil, models.NewValidationError("Invalid status filter")
	}

	user, err := s.userRepo.GetByToken(ctx, identity.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []models.Post{}, nil
	}

	posts, err := s.postRepo.ListByAuthor(ctx, user.ID, status)
	if err != nil {
		return nil, err
	}
	username := ""
	if user.Username != nil {
		username = *user.Username
	}
	for i := range posts {
		posts[i].AuthorUsername = username
	}
	return posts, nil
}

// GetByID returns a single post for an authenticated caller. Drafts are
// visible to their author only and read as missing to everyone else.
// Fetching a published post counts a view.
func (s *PostService) GetByID(ctx context.Context, identity models.Identity, postID uint) (*models.Post, error) {
	if !identity.Authenticated() {
		return nil, models.NewUnauthenticatedError("")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	viewer, err := s.userRepo.GetByToken(ctx, identity.TokenIdentifier)
	if err != nil {
		return nil, err
	}

	if !post.IsPublished() {
		if viewer == nil || viewer.ID != post.AuthorID {
			// Drafts read as missing rather than forbidden, so their
			// existence is not leaked.
			return nil, models.NewNotFoundError("Post", postID)
		}
		return post, nil
	}

	if viewer == nil || viewer.ID != post.AuthorID {
		if err := s.postRepo.IncrementViewCount(ctx, postID); err == nil {
			post.ViewCount++
		}
	}

	author, err := s.userRepo.GetByID(ctx, post.AuthorID)
	if err == nil && author.Username != nil {
		post.AuthorUsername = *author.Username
	}
	return post, nil
}

// Delete removes an owned post together with its likes and comments.
func (s *PostService) Delete(ctx context.Context, identity models.Identity, postID uint) error {
	user, err := s.resolveUser(ctx, identity)
	if err != nil {
		return err
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != user.ID {
		return models.NewForbiddenError("Not authorized to delete this post")
	}
	return s.postRepo.Delete(ctx, postID)
}
