package service

import (
	"testing"

	"quill/internal/database"
	"quill/internal/models"
	"quill/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv bundles a fresh database with repositories and services.
type testEnv struct {
	db       *gorm.DB
	posts    *PostService
	comments *CommentService
	follows  *FollowService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)

	postRepo := repository.NewPostRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	userRepo := repository.NewUserRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	return &testEnv{
		db:       db,
		posts:    NewPostService(postRepo, groupRepo, userRepo, commentRepo, followRepo),
		comments: NewCommentService(commentRepo, postRepo),
		follows:  NewFollowService(followRepo, userRepo),
	}
}

func (e *testEnv) user(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "hashed"}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) group(t *testing.T, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: "Group " + slug, Slug: slug}
	require.NoError(t, e.db.Create(group).Error)
	return group
}

func (e *testEnv) post(t *testing.T, author *models.User, text string) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, UserID: author.ID}
	require.NoError(t, e.db.Create(post).Error)
	return post
}
