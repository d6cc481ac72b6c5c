package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/security"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a Server over a fresh in-memory database. The
// Prometheus middleware is left nil so repeated test setups do not
// re-register collectors.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	sanitizer := security.NewContentSanitizer()

	s := &Server{
		config:      &config.Config{Port: "8375", JWTSecret: "test-secret-key-12345678901234567890123456789012"},
		db:          db,
		userRepo:    userRepo,
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
	}
	s.userService = service.NewUserService(userRepo)
	s.postService = service.NewPostService(postRepo, userRepo, sanitizer)
	s.likeService = service.NewLikeService(likeRepo, postRepo, userRepo)
	s.commentService = service.NewCommentService(commentRepo, postRepo, userRepo, sanitizer)
	return s
}

// withIdentity simulates the auth middleware for a fixed provider identity.
func withIdentity(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("identity", models.Identity{
			TokenIdentifier: token,
			Name:            "Test Writer",
			Email:           "writer@example.com",
		})
		return c.Next()
	}
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func storeUser(t *testing.T, s *Server, token string) *models.User {
	t.Helper()

	user, err := s.userService.ResolveOrCreate(context.Background(), models.Identity{
		TokenIdentifier: token,
		Name:            "Test Writer",
		Email:           "writer@example.com",
	})
	require.NoError(t, err)
	return user
}
