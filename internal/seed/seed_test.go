package seed

import (
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func TestSeedWriters(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	users, err := s.SeedWriters(10)
	require.NoError(t, err)
	assert.Len(t, users, 10)

	for _, user := range users {
		assert.NotEmpty(t, user.TokenIdentifier)
		assert.NotEmpty(t, user.Name)
		require.NotNil(t, user.Username)
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 10, count)
}

func TestSeedContent(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	users, err := s.SeedWriters(6)
	require.NoError(t, err)

	posts, err := s.SeedContent(users, 12, 2, 3)
	require.NoError(t, err)
	assert.Len(t, posts, 12)

	t.Run("At Most One Draft Per Author", func(t *testing.T) {
		type row struct {
			AuthorID uint
			N        int64
		}
		var rows []row
		require.NoError(t, db.Model(&models.Post{}).
			Select("author_id, count(*) as n").
			Where("status = ?", models.PostStatusDraft).
			Group("author_id").
			Scan(&rows).Error)
		for _, r := range rows {
			assert.LessOrEqual(t, r.N, int64(1))
		}
	})

	t.Run("Like Counters Match Rows", func(t *testing.T) {
		var seeded []models.Post
		require.NoError(t, db.Where("status = ?", models.PostStatusPublished).Find(&seeded).Error)
		for _, post := range seeded {
			var likes int64
			require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes).Error)
			assert.EqualValues(t, likes, post.LikeCount, "post %d", post.ID)
		}
	})

	t.Run("Comments Are Approved With Snapshots", func(t *testing.T) {
		var comments []models.Comment
		require.NoError(t, db.Find(&comments).Error)
		assert.NotEmpty(t, comments)
		for _, comment := range comments {
			assert.Equal(t, models.CommentStatusApproved, comment.Status)
			assert.NotEmpty(t, comment.AuthorName)
		}
	})
}

func TestPresets(t *testing.T) {
	presets, err := LoadPresets()
	require.NoError(t, err)
	require.NotEmpty(t, presets)

	names := make(map[string]bool, len(presets))
	for _, preset := range presets {
		names[preset.Name] = true
		assert.Positive(t, preset.Users)
		assert.Positive(t, preset.Posts)
	}
	assert.True(t, names["Minimal"])

	t.Run("Apply Minimal", func(t *testing.T) {
		db := setupSeedDB(t)
		s := NewSeeder(db)
		require.NoError(t, s.ApplyPreset("Minimal"))

		var users int64
		require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
		assert.EqualValues(t, 5, users)
	})

	t.Run("Unknown Preset", func(t *testing.T) {
		db := setupSeedDB(t)
		s := NewSeeder(db)
		assert.Error(t, s.ApplyPreset("Nope"))
	})
}
