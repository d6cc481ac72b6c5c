package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByToken(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "token_identifier", "name"}).
			AddRow(1, "clerk|abc", "Writer")
		mock.ExpectQuery(`SELECT (.+) FROM "users"`).
			WillReturnRows(rows)

		user, err := repo.GetByToken(ctx, "clerk|abc")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "Writer", user.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing returns nil without error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM "users"`).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.GetByToken(ctx, "clerk|nobody")
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_SetUsernameConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := seedUser(t, db, "clerk|first")
	second := seedUser(t, db, "clerk|second")

	require.NoError(t, repo.UpdateFields(ctx, first.ID, map[string]interface{}{"username": "inkling"}))

	err := repo.UpdateFields(ctx, second.ID, map[string]interface{}{"username": "inkling"})
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
}

func TestUserRepository_GetPublicProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "clerk|profiled")
	require.NoError(t, repo.UpdateFields(ctx, user.ID, map[string]interface{}{"username": "profiled"}))

	profile, err := repo.GetPublicProfile(ctx, "profiled")
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, "profiled", profile.Username)

	_, err = repo.GetPublicProfile(ctx, "ghost")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
