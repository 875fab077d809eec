package server

import (
	"net/http"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentCount(t *testing.T, ts *testServer) int64 {
	t.Helper()
	var n int64
	require.NoError(t, ts.db.Model(&models.Comment{}).Count(&n).Error)
	return n
}

func TestAddComment(t *testing.T) {
	ts := newTestServer(t)
	author := ts.user(t, "leo")
	commenter := ts.user(t, "mia")
	post := ts.post(t, author, "a post")

	resp := ts.postJSON(t, postDetailPath(post.ID)+"/comment", ts.token(t, commenter),
		map[string]string{"text": "nice"})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, postDetailPath(post.ID), resp.Header.Get("Location"))
	_ = resp.Body.Close()

	var comment models.Comment
	require.NoError(t, ts.db.First(&comment).Error)
	assert.Equal(t, commenter.ID, comment.UserID)
	assert.Equal(t, post.ID, comment.PostID)
}

func TestAddComment_EmptyTextRejected(t *testing.T) {
	ts := newTestServer(t)
	author := ts.user(t, "leo")
	post := ts.post(t, author, "a post")

	resp := ts.postJSON(t, postDetailPath(post.ID)+"/comment", ts.token(t, author),
		map[string]string{"text": "  "})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Contains(t, body["fields"], "text")
	assert.Equal(t, int64(0), commentCount(t, ts))
}

func TestAddComment_UnknownPost(t *testing.T) {
	ts := newTestServer(t)
	commenter := ts.user(t, "mia")

	// The post must exist even when the form is also invalid.
	for _, payload := range []map[string]string{{"text": "nice"}, {"text": ""}} {
		resp := ts.postJSON(t, "/posts/999/comment", ts.token(t, commenter), payload)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	}
}

func TestAddComment_RequiresAuth(t *testing.T) {
	ts := newTestServer(t)
	author := ts.user(t, "leo")
	post := ts.post(t, author, "a post")

	resp := ts.postJSON(t, postDetailPath(post.ID)+"/comment", "", map[string]string{"text": "hi"})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))
	_ = resp.Body.Close()
	assert.Equal(t, int64(0), commentCount(t, ts))
}
