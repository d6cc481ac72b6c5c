package service

import (
	"context"

	"inkwell/internal/models"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByTokenFn       func(context.Context, string) (*models.User, error)
	getByUsernameFn    func(context.Context, string) (*models.User, error)
	getPublicProfileFn func(context.Context, string) (*models.PublicUser, error)
	createFn           func(context.Context, *models.User) error
	updateFn           func(context.Context, *models.User) error
	updateFieldsFn     func(context.Context, uint, map[string]interface{}) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByToken(ctx context.Context, token string) (*models.User, error) {
	return s.getByTokenFn(ctx, token)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetPublicProfile(ctx context.Context, username string) (*models.PublicUser, error) {
	return s.getPublicProfileFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, id, fields)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:          func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByTokenFn:       func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getPublicProfileFn: func(_ context.Context, _ string) (*models.PublicUser, error) { return nil, nil },
		createFn:           func(_ context.Context, _ *models.User) error { return nil },
		updateFn:           func(_ context.Context, _ *models.User) error { return nil },
		updateFieldsFn:     func(_ context.Context, _ uint, _ map[string]interface{}) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn             func(context.Context, *models.Post) error
	getByIDFn            func(context.Context, uint) (*models.Post, error)
	getDraftByAuthorFn   func(context.Context, uint) (*models.Post, error)
	listByAuthorFn       func(context.Context, uint, string) ([]models.Post, error)
	updateFieldsFn       func(context.Context, uint, map[string]interface{}) error
	deleteFn             func(context.Context, uint) error
	incrementViewCountFn func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetDraftByAuthor(ctx context.Context, authorID uint) (*models.Post, error) {
	return s.getDraftByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, status string) ([]models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, status)
}
func (s *postRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IncrementViewCount(ctx context.Context, id uint) error {
	return s.incrementViewCountFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:             func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:            func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		getDraftByAuthorFn:   func(_ context.Context, _ uint) (*models.Post, error) { return nil, nil },
		listByAuthorFn:       func(_ context.Context, _ uint, _ string) ([]models.Post, error) { return nil, nil },
		updateFieldsFn:       func(_ context.Context, _ uint, _ map[string]interface{}) error { return nil },
		deleteFn:             func(_ context.Context, _ uint) error { return nil },
		incrementViewCountFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	toggleFn       func(context.Context, uint, uint) (*models.LikeState, error)
	hasLikedFn     func(context.Context, uint, uint) (bool, error)
	countForPostFn func(context.Context, uint) (int64, error)
}

func (s *likeRepoStub) Toggle(ctx context.Context, userID, postID uint) (*models.LikeState, error) {
	return s.toggleFn(ctx, userID, postID)
}
func (s *likeRepoStub) HasLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.hasLikedFn(ctx, userID, postID)
}
func (s *likeRepoStub) CountForPost(ctx context.Context, postID uint) (int64, error) {
	return s.countForPostFn(ctx, postID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		toggleFn: func(_ context.Context, _, _ uint) (*models.LikeState, error) {
			return &models.LikeState{}, nil
		},
		hasLikedFn:     func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		countForPostFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn             func(context.Context, *models.Comment) error
	getByIDFn            func(context.Context, uint) (*models.Comment, error)
	listApprovedByPostFn func(context.Context, uint) ([]models.Comment, error)
	deleteFn             func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListApprovedByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listApprovedByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:             func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:            func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listApprovedByPostFn: func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
		deleteFn:             func(_ context.Context, _ uint) error { return nil },
	}
}

func identityFor(token string) models.Identity {
	return models.Identity{
		TokenIdentifier: token,
		Name:            "Test Writer",
		Email:           "writer@example.com",
	}
}

func assertAppError(err error) (*models.AppError, bool) {
	appErr, ok := err.(*models.AppError)
	return appErr, ok
}
