package service

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentService(commentRepo *commentRepoStub, postRepo *postRepoStub, userRepo *userRepoStub) *CommentService {
	return NewCommentService(commentRepo, postRepo, userRepo, security.NewContentSanitizer())
}

func publishedPostRepo(post *models.Post) *postRepoStub {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) { return post, nil }
	return repo
}

func TestCommentService_Add(t *testing.T) {
	commenter := &models.User{ID: 2, TokenIdentifier: "clerk|reader", Name: "Reader", Email: "reader@example.com"}
	post := &models.Post{ID: 10, AuthorID: 1, Status: models.PostStatusPublished}

	commentRepo := noopCommentRepo()
	var created *models.Comment
	commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 100
		created = c
		return nil
	}

	svc := newCommentService(commentRepo, publishedPostRepo(post), resolvedUserRepo(commenter))
	comment, err := svc.Add(context.Background(), identityFor("clerk|reader"), 10, "  great piece!  ")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, uint(100), comment.ID)
	assert.Equal(t, "great piece!", created.Content)
	assert.Equal(t, models.CommentStatusApproved, created.Status)
	// The author's name and email are snapshotted at creation time.
	assert.Equal(t, "Reader", created.AuthorName)
	assert.Equal(t, "reader@example.com", created.AuthorEmail)
}

func TestCommentService_AddRejectsUnpublishedPost(t *testing.T) {
	commenter := &models.User{ID: 2, TokenIdentifier: "clerk|reader"}
	draft := &models.Post{ID: 11, AuthorID: 1, Status: models.PostStatusDraft}

	svc := newCommentService(noopCommentRepo(), publishedPostRepo(draft), resolvedUserRepo(commenter))
	_, err := svc.Add(context.Background(), identityFor("clerk|reader"), 11, "first!")
	appErr, ok := assertAppError(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code, "draft existence must not leak through the error code")
}

func TestCommentService_AddValidatesContent(t *testing.T) {
	commenter := &models.User{ID: 2, TokenIdentifier: "clerk|reader"}
	post := &models.Post{ID: 10, AuthorID: 1, Status: models.PostStatusPublished}
	svc := newCommentService(noopCommentRepo(), publishedPostRepo(post), resolvedUserRepo(commenter))

	for _, bad := range []string{"", "   ", "<script>x()</script>", strings.Repeat("a", models.MaxCommentLen+1)} {
		_, err := svc.Add(context.Background(), identityFor("clerk|reader"), 10, bad)
		appErr, ok := assertAppError(err)
		require.True(t, ok, "content %q", bad)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	}
}

func TestCommentService_ListForPostDropsUnresolvedAuthors(t *testing.T) {
	post := &models.Post{ID: 10, AuthorID: 1, Status: models.PostStatusPublished}

	commentRepo := noopCommentRepo()
	commentRepo.listApprovedByPostFn = func(_ context.Context, _ uint) ([]models.Comment, error) {
		return []models.Comment{
			{ID: 1, PostID: 10, AuthorID: 2, Content: "kept", Author: models.User{ID: 2, Name: "Alive"}},
			{ID: 2, PostID: 10, AuthorID: 3, Content: "orphaned"},
			{ID: 3, PostID: 10, AuthorID: 4, Content: "also kept", Author: models.User{ID: 4, Name: "Here"}},
		}, nil
	}

	svc := newCommentService(commentRepo, publishedPostRepo(post), noopUserRepo())
	comments, err := svc.ListForPost(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "kept", comments[0].Content)
	assert.Equal(t, "Alive", comments[0].Author.Name)
	assert.Equal(t, "also kept", comments[1].Content)
}

func TestCommentService_DeleteByCommentAuthor(t *testing.T) {
	commenter := &models.User{ID: 2, TokenIdentifier: "clerk|reader"}
	comment := &models.Comment{ID: 100, PostID: 10, AuthorID: 2}

	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) { return comment, nil }
	deleted := 0
	commentRepo.deleteFn = func(_ context.Context, id uint) error {
		assert.Equal(t, uint(100), id)
		deleted++
		return nil
	}

	svc := newCommentService(commentRepo, noopPostRepo(), resolvedUserRepo(commenter))
	require.NoError(t, svc.Delete(context.Background(), identityFor("clerk|reader"), 100))
	assert.Equal(t, 1, deleted)
}

func TestCommentService_DeleteByPostAuthor(t *testing.T) {
	postAuthor := &models.User{ID: 1, TokenIdentifier: "clerk|owner"}
	comment := &models.Comment{ID: 100, PostID: 10, AuthorID: 2}
	post := &models.Post{ID: 10, AuthorID: 1, Status: models.PostStatusPublished}

	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) { return comment, nil }
	deleted := 0
	commentRepo.deleteFn = func(_ context.Context, _ uint) error {
		deleted++
		return nil
	}

	svc := newCommentService(commentRepo, publishedPostRepo(post), resolvedUserRepo(postAuthor))
	require.NoError(t, svc.Delete(context.Background(), identityFor("clerk|owner"), 100))
	assert.Equal(t, 1, deleted)
}

func TestCommentService_DeleteForbiddenForBystanders(t *testing.T) {
	bystander := &models.User{ID: 5, TokenIdentifier: "clerk|bystander"}
	comment := &models.Comment{ID: 100, PostID: 10, AuthorID: 2}
	post := &models.Post{ID: 10, AuthorID: 1, Status: models.PostStatusPublished}

	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) { return comment, nil }
	commentRepo.deleteFn = func(_ context.Context, _ uint) error {
		t.Fatal("delete must not be called")
		return nil
	}

	svc := newCommentService(commentRepo, publishedPostRepo(post), resolvedUserRepo(bystander))
	err := svc.Delete(context.Background(), identityFor("clerk|bystander"), 100)
	appErr, ok := assertAppError(err)
	require.True(t, ok)
	assert.Equal(t, models.CodeForbidden, appErr.Code)
}
