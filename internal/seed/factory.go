// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var categories = []string{
	"Technology", "Writing", "Productivity", "Design", "Engineering",
	"Career", "Open Source", "Essays", "Tutorials",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user with a synthetic
// provider identity. Optional override functions may modify the
// generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	username := fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999))
	user := &models.User{
		TokenIdentifier: "seed|" + uuid.NewString(),
		Name:            gofakeit.Name(),
		Email:           gofakeit.Email(),
		ImageURL:        fmt.Sprintf("https://i.pravatar.cc/150?u=%s", uuid.NewString()),
		Username:        &username,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post without persisting it, with a realistic
// created_at spread over the past 90 days.
func (f *Factory) BuildPost(author *models.User, status string, overrides ...func(*models.Post)) *models.Post {
	tagCount := f.rng.Intn(4)
	tags := make([]string, 0, tagCount)
	for i := 0; i < tagCount; i++ {
		tags = append(tags, gofakeit.Word())
	}

	post := &models.Post{
		AuthorID: author.ID,
		Title:    gofakeit.Sentence(5),
		Content:  "<p>" + gofakeit.Paragraph(2, 4, 8, "</p><p>") + "</p>",
		Status:   status,
		Category: categories[f.rng.Intn(len(categories))],
		Tags:     datatypes.JSONSlice[string](tags),
	}

	daysBack := f.rng.Intn(90)
	hoursBack := f.rng.Intn(24)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	if status == models.PostStatusPublished {
		publishedAt := post.CreatedAt.Add(time.Duration(f.rng.Intn(48)) * time.Hour)
		post.PublishedAt = &publishedAt
		post.ViewCount = f.rng.Intn(500)
		post.FeaturedImage = fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", uuid.NewString())
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment persists an approved comment with the author snapshot
// taken from the given user.
func (f *Factory) CreateComment(post *models.Post, author *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:      post.ID,
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		AuthorEmail: author.Email,
		Content:     gofakeit.Sentence(f.rng.Intn(12) + 3),
		Status:      models.CommentStatusApproved,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like row and bumps the post counter in the same
// transaction, matching the runtime toggle behavior.
func (f *Factory) CreateLike(post *models.Post, user *models.User) error {
	return f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", post.ID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
}
