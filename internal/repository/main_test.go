package repository

import (
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory database migrated to the current
// schema. Each test gets its own database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, token string) *models.User {
	t.Helper()

	user := &models.User{
		TokenIdentifier: token,
		Name:            "Test Author",
		Email:           token + "@example.com",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, authorID uint, status string) *models.Post {
	t.Helper()

	post := &models.Post{
		AuthorID: authorID,
		Title:    "A Post",
		Content:  "<p>body</p>",
		Status:   status,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
