package service

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func followCount(t *testing.T, env *testEnv, userID, authorID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, env.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error)
	return count
}

func TestFollowService_Follow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reader := env.user(t, "reader")
	author := env.user(t, "author")

	got, err := env.follows.Follow(ctx, reader.ID, "author")
	require.NoError(t, err)
	assert.Equal(t, author.ID, got.ID)
	assert.Equal(t, int64(1), followCount(t, env, reader.ID, author.ID))
}

func TestFollowService_Follow_DuplicateKeepsSingleEdge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reader := env.user(t, "reader")
	author := env.user(t, "author")

	_, err := env.follows.Follow(ctx, reader.ID, "author")
	require.NoError(t, err)
	_, err = env.follows.Follow(ctx, reader.ID, "author")
	require.NoError(t, err)

	assert.Equal(t, int64(1), followCount(t, env, reader.ID, author.ID))
}

func TestFollowService_Follow_SelfIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reader := env.user(t, "reader")

	_, err := env.follows.Follow(ctx, reader.ID, "reader")
	require.NoError(t, err)
	assert.Equal(t, int64(0), followCount(t, env, reader.ID, reader.ID))
}

func TestFollowService_Follow_UnknownAuthor(t *testing.T) {
	env := newTestEnv(t)
	reader := env.user(t, "reader")

	_, err := env.follows.Follow(context.Background(), reader.ID, "nobody")
	assert.True(t, models.IsNotFound(err))
}

func TestFollowService_Unfollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reader := env.user(t, "reader")
	author := env.user(t, "author")

	_, err := env.follows.Follow(ctx, reader.ID, "author")
	require.NoError(t, err)

	_, err = env.follows.Unfollow(ctx, reader.ID, "author")
	require.NoError(t, err)
	assert.Equal(t, int64(0), followCount(t, env, reader.ID, author.ID))

	// Unfollowing again is a no-op rather than an error.
	_, err = env.follows.Unfollow(ctx, reader.ID, "author")
	require.NoError(t, err)

	_, err = env.follows.Unfollow(ctx, reader.ID, "nobody")
	assert.True(t, models.IsNotFound(err))
}
