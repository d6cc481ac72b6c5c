package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// LikeService manages like toggles on published posts.
type LikeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewLikeService returns a new LikeService.
func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository, userRepo repository.UserRepository) *LikeService {
	return &LikeService{
		likeRepo: likeRepo,
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

func (s *LikeService) resolveUser(ctx context.Context, identity models.Identity) (*models.User, error) {
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

// Toggle flips the caller's like on a published post and returns the
// new state. Draft posts read as missing.
func (s *LikeService) Toggle(ctx context.Context, identity models.Identity, postID uint) (*models.LikeState, error) {
	ctx, span := observability.GetTraceLayer().TraceServiceMethod(ctx, "LikeService", "Toggle")
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
		// Unpublished posts read as missing, for the author too.
		return nil, models.NewNotFoundError("Post", postID)
	}

	state, err := s.likeRepo.Toggle(ctx, user.ID, postID)
	if err != nil {
		return nil, err
	}

	outcome := "unliked"
	if state.Liked {
		outcome = "liked"
	}
	observability.LikesToggledTotal.WithLabelValues(outcome).Inc()
	return state, nil
}

// HasLiked reports whether the caller has liked the post. An identity
// with no stored user cannot have liked anything.
func (s *LikeService) HasLiked(ctx context.Context, identity models.Identity, postID uint) (bool, error) {
	if !identity.Authenticated() {
		return false, models.NewUnauthenticatedError("")
	}
	user, err := s.userRepo.GetByToken(ctx, identity.TokenIdentifier)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	return s.likeRepo.HasLiked(ctx, user.ID, postID)
}
