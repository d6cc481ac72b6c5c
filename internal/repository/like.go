package repository

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines persistence operations for post likes.
type LikeRepository interface {
	Toggle(ctx context.Context, userID, postID uint) (*models.LikeState, error)
	HasLiked(ctx context.Context, userID, postID uint) (bool, error)
	CountForPost(ctx context.Context, postID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle flips the like state for the user and post. The row insert or
// delete and the counter delta happen in one transaction, so concurrent
// toggles cannot drift the counter. The counter never goes below zero.
func (r *likeRepository) Toggle(ctx context.Context, userID, postID uint) (*models.LikeState, error) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "toggle", "likes")
	defer span.End()

	var state models.LikeState

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			state.Liked = false
			if err := tx.Model(&models.Post{}).
				Where("id = ? AND like_count > 0", postID).
				UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error; err != nil {
				return err
			}
		} else {
			insert := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.Like{UserID: userID, PostID: postID})
			if insert.Error != nil {
				return insert.Error
			}
			state.Liked = true
			// A concurrent insert that won the conflict already counted.
			if insert.RowsAffected > 0 {
				if err := tx.Model(&models.Post{}).
					Where("id = ?", postID).
					UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
					return err
				}
			}
		}

		var count int64
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).
			Pluck("like_count", &count).Error; err != nil {
			return err
		}
		state.LikeCount = int(count)
		return nil
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &state, nil
}

func (r *likeRepository) HasLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *likeRepository) CountForPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
