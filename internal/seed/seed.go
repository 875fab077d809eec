// Package seed provides database seeding for development and demos.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"quill/internal/models"
	"quill/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var groupSeeds = []struct {
	Title string
	Slug  string
}{
	{"Cats", "cats"},
	{"Dogs", "dogs"},
	{"Travel", "travel"},
	{"Cooking", "cooking"},
	{"Books", "books"},
	{"Technology", "tech"},
	{"Music", "music"},
	{"Photography", "photos"},
}

// Seed populates the database with demo users, groups, posts, comments and
// follow edges.
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	groups, err := createOrGetGroups(db)
	if err != nil {
		return fmt.Errorf("failed to create groups: %w", err)
	}
	log.Printf("%d groups available", len(groups))

	posts, err := createPosts(db, users, groups, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := createComments(db, users, posts); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	if err := createFollows(db, users); err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}

	log.Println("Seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, follows, posts, groups, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	// A couple of fixed accounts for predictable logins.
	for _, name := range []string{"leo", "author"} {
		user := models.User{
			Username: name,
			Email:    fmt.Sprintf("%s@example.com", name),
			Password: string(hashedPassword),
			Bio:      gofakeit.Sentence(8),
		}
		if err := db.Create(&user).Error; err == nil {
			users = append(users, user)
		}
	}

	for i := len(users); i < count; i++ {
		username := strings.ToLower(fmt.Sprintf("%s%d", gofakeit.Username(), i))
		if err := validation.ValidateUsername(username); err != nil {
			username = fmt.Sprintf("writer%d", i)
		}

		user := models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@example.com", username),
			Password: string(hashedPassword),
			Bio:      gofakeit.Sentence(8),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Failed to create user %s: %v", username, err)
			continue
		}
		users = append(users, user)
	}

	return users, nil
}

func createOrGetGroups(db *gorm.DB) ([]models.Group, error) {
	groups := make([]models.Group, 0, len(groupSeeds))
	for _, g := range groupSeeds {
		var group models.Group
		err := db.Where(models.Group{Slug: g.Slug}).
			Attrs(models.Group{Title: g.Title, Description: gofakeit.Sentence(12)}).
			FirstOrCreate(&group).Error
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func createPosts(db *gorm.DB, users []models.User, groups []models.Group, count int) ([]models.Post, error) {
	//nolint:gosec // weak randomness is fine for demo data
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]models.Post, 0, count)

	for i := 0; i < count; i++ {
		user := users[r.Intn(len(users))]

		post := models.Post{
			Text:   gofakeit.Paragraph(1, 3, 8, "\n"),
			UserID: user.ID,
		}
		// Roughly two thirds of posts belong to a group.
		if r.Float32() < 0.66 {
			post.GroupID = &groups[r.Intn(len(groups))].ID
		}
		if r.Float32() < 0.3 {
			post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		}
		// Spread created_at over the past 90 days so the listings paginate.
		daysBack := r.Intn(90)
		post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(r.Intn(24))*time.Hour)

		if err := db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, nil
}

func createComments(db *gorm.DB, users []models.User, posts []models.Post) error {
	//nolint:gosec // weak randomness is fine for demo data
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, post := range posts {
		for n := r.Intn(4); n > 0; n-- {
			comment := models.Comment{
				Text:   gofakeit.Sentence(r.Intn(12) + 3),
				PostID: post.ID,
				UserID: users[r.Intn(len(users))].ID,
			}
			if err := db.Create(&comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func createFollows(db *gorm.DB, users []models.User) error {
	//nolint:gosec // weak randomness is fine for demo data
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, user := range users {
		for n := r.Intn(5); n > 0; n-- {
			author := users[r.Intn(len(users))]
			if author.ID == user.ID {
				continue
			}
			follow := models.Follow{UserID: user.ID, AuthorID: author.ID}
			// The unique index rejects duplicate edges; skip those quietly.
			if err := db.Where(models.Follow{UserID: user.ID, AuthorID: author.ID}).
				FirstOrCreate(&follow).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
