package seed

import (
	"fmt"
	"log"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Seeder orchestrates data generation for development databases.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded content. Comment and like rows go first to
// satisfy foreign keys on databases that enforce them.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []interface{}{
		&models.Comment{}, &models.Like{}, &models.Post{}, &models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedWriters creates the given number of users.
func (s *Seeder) SeedWriters(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("failed to create user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("%d users created", len(users))
	return users, nil
}

// SeedContent creates published posts spread across the given users,
// at most one working draft per author, and engagement (likes and
// comments) from other users on the published posts.
func (s *Seeder) SeedContent(users []*models.User, numPosts int, commentsPerPost, likesPerPost int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to seed content for")
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(author, models.PostStatusPublished))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d published posts created", len(posts))

	// Roughly a third of the authors are mid-draft.
	drafts := 0
	for i, user := range users {
		if i%3 != 0 {
			continue
		}
		draft := s.factory.BuildPost(user, models.PostStatusDraft)
		if err := s.db.Create(draft).Error; err != nil {
			return nil, fmt.Errorf("failed to create draft: %w", err)
		}
		drafts++
	}
	log.Printf("%d drafts created", drafts)

	for _, post := range posts {
		likers := pickUsers(s.factory, users, post.AuthorID, likesPerPost)
		for _, liker := range likers {
			if err := s.factory.CreateLike(post, liker); err != nil {
				return nil, fmt.Errorf("failed to create like: %w", err)
			}
		}
		commenters := pickUsers(s.factory, users, 0, commentsPerPost)
		for _, commenter := range commenters {
			if _, err := s.factory.CreateComment(post, commenter); err != nil {
				return nil, fmt.Errorf("failed to create comment: %w", err)
			}
		}
	}
	log.Println("Engagement created")

	return posts, nil
}

// pickUsers selects up to n distinct users, excluding the given author ID
// (0 excludes nobody).
func pickUsers(f *Factory, users []*models.User, excludeID uint, n int) []*models.User {
	perm := f.rng.Perm(len(users))
	picked := make([]*models.User, 0, n)
	for _, idx := range perm {
		if len(picked) == n {
			break
		}
		if users[idx].ID == excludeID {
			continue
		}
		picked = append(picked, users[idx])
	}
	return picked
}
