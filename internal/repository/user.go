package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByToken(ctx context.Context, tokenIdentifier string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetPublicProfile(ctx context.Context, username string) (*models.PublicUser, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByToken returns (nil, nil) when no user is registered for the
// external identity.
func (r *userRepository) GetByToken(ctx context.Context, tokenIdentifier string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("token_identifier = ?", tokenIdentifier).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByUsername returns (nil, nil) when the username is unclaimed.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetPublicProfile serves public profile reads through the cache.
func (r *userRepository) GetPublicProfile(ctx context.Context, username string) (*models.PublicUser, error) {
	return cache.Aside(ctx, cache.ProfileKey(username), cache.ProfileTTL, func() (*models.PublicUser, error) {
		user, err := r.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, models.NewNotFoundError("User", username)
		}
		return user.PublicProfile(), nil
	})
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("user already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("username is already taken")
		}
		return models.NewInternalError(err)
	}
	if user.Username != nil {
		cache.InvalidateProfile(ctx, *user.Username)
	}
	return nil
}

func (r *userRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("username is already taken")
		}
		return models.NewInternalError(err)
	}
	if username, ok := fields["username"].(string); ok {
		cache.InvalidateProfile(ctx, username)
	}
	return nil
}
