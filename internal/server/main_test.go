package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "SecurePass12!"

// testServer bundles a Server wired to an isolated SQLite database and a
// miniredis instance, plus the Fiber app with the full route table.
type testServer struct {
	srv *Server
	app *fiber.App
	db  *gorm.DB
	mr  *miniredis.Miniredis
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.ConnectTest()
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	// The index cache reads the package-level client.
	cache.SetClient(redisClient)
	t.Cleanup(func() { cache.SetClient(nil) })

	cfg := &config.Config{
		Port:      "0",
		JWTSecret: "test-secret-key-for-handler-tests",
		Env:       "test",
	}

	srv, err := NewServerWithDeps(cfg, db, redisClient)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)

	return &testServer{srv: srv, app: app, db: db, mr: mr}
}

func (ts *testServer) user(t *testing.T, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
	}
	require.NoError(t, ts.db.Create(u).Error)
	return u
}

func (ts *testServer) group(t *testing.T, slug string) *models.Group {
	t.Helper()
	g := &models.Group{Title: slug, Slug: slug, Description: "about " + slug}
	require.NoError(t, ts.db.Create(g).Error)
	return g
}

func (ts *testServer) post(t *testing.T, author *models.User, text string) *models.Post {
	t.Helper()
	p := &models.Post{Text: text, UserID: author.ID}
	require.NoError(t, ts.db.Create(p).Error)
	return p
}

func (ts *testServer) follow(t *testing.T, user, author *models.User) {
	t.Helper()
	require.NoError(t, ts.db.Create(&models.Follow{UserID: user.ID, AuthorID: author.ID}).Error)
}

func (ts *testServer) token(t *testing.T, u *models.User) string {
	t.Helper()
	token, err := ts.srv.generateToken(u.ID, u.Username)
	require.NoError(t, err)
	return token
}

// get issues a GET request, optionally authenticated.
func (ts *testServer) get(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	return resp
}

// postJSON issues a POST request with a JSON body, optionally authenticated.
func (ts *testServer) postJSON(t *testing.T, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(http.MethodPost, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return raw
}

func postCount(t *testing.T, ts *testServer) int64 {
	t.Helper()
	var n int64
	require.NoError(t, ts.db.Model(&models.Post{}).Count(&n).Error)
	return n
}

func seedPosts(t *testing.T, ts *testServer, author *models.User, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		ts.post(t, author, fmt.Sprintf("post %d", i))
	}
}
