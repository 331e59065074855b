package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blog-service/internal/application/services"
	"blog-service/internal/domain/catalog"
	"blog-service/internal/domain/consistency"
	"blog-service/internal/domain/entities"
	"blog-service/internal/infrastructure"
	"blog-service/internal/infrastructure/db/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, opts Options) http.Handler {
	t.Helper()
	store := memstore.New()
	tagCatalog := catalog.New(entities.DefaultTagVocabulary)
	require.NoError(t, tagCatalog.Seed(context.Background(), store))

	engine := consistency.NewEngine()
	users := services.NewUserService(store, engine, nil, nil)
	posts := services.NewPostService(store, engine, tagCatalog, nil, nil)
	return NewServer(users, posts, opts).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestBlogAPI(t *testing.T) {
	h := newTestServer(t, Options{})

	rec, env := do(t, h, http.MethodPost, "/api/users", `{"username":"alice","email":"alice@x.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "success", env.Status)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec, env = do(t, h, http.MethodPost, "/api/posts",
		`{"user_id":1,"title":"Intro","content":"Hello world","level":"Beginner","category":"Python Basics","tags":["Tutorial","Tips"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var post struct {
		ID       uint     `json:"id"`
		Category string   `json:"category"`
		Tags     []string `json:"tags"`
		Author   struct {
			ID uint `json:"id"`
		} `json:"author"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.Equal(t, uint(1), post.ID)
	assert.Equal(t, uint(1), post.Author.ID)
	assert.Equal(t, []string{"Tips", "Tutorial"}, post.Tags)

	rec, env = do(t, h, http.MethodPatch, "/api/posts/1", `{"tags":["Performance"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.Equal(t, []string{"Performance"}, post.Tags)

	rec, env = do(t, h, http.MethodPatch, "/api/posts/1", `{"category":"FastAPI"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "error", env.Status)
	assert.Contains(t, env.Message, "category")

	rec, env = do(t, h, http.MethodGet, "/api/posts/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.Equal(t, "Python Basics", post.Category)

	rec, _ = do(t, h, http.MethodGet, "/api/users/1/posts", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, h, http.MethodDelete, "/api/users/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/posts/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorStatuses(t *testing.T) {
	h := newTestServer(t, Options{})
	rec, _ := do(t, h, http.MethodPost, "/api/users", `{"username":"alice","email":"alice@x.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"duplicate username", http.MethodPost, "/api/users", `{"username":"alice","email":"other@x.com"}`, http.StatusConflict},
		{"invalid email", http.MethodPost, "/api/users", `{"username":"bob","email":"bob"}`, http.StatusUnprocessableEntity},
		{"malformed json", http.MethodPost, "/api/users", `{"username":`, http.StatusBadRequest},
		{"unknown level", http.MethodPost, "/api/posts", `{"user_id":1,"title":"Intro","content":"Hello","level":"Expert","category":"Flask"}`, http.StatusUnprocessableEntity},
		{"unknown author", http.MethodPost, "/api/posts", `{"user_id":9,"title":"Intro","content":"Hello","level":"Beginner","category":"Flask"}`, http.StatusNotFound},
		{"bad id", http.MethodGet, "/api/users/abc", "", http.StatusBadRequest},
		{"missing user", http.MethodGet, "/api/users/42", "", http.StatusNotFound},
		{"posts of missing user", http.MethodGet, "/api/users/42/posts", "", http.StatusNotFound},
		{"full update without tags", http.MethodPut, "/api/posts/1", `{"user_id":1,"title":"Intro","content":"Hello","level":"Beginner","category":"Flask"}`, http.StatusUnprocessableEntity},
		{"unknown route", http.MethodGet, "/api/nothing", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, "error", env.Status)
			assert.Equal(t, tt.status, env.Code)
		})
	}
}

func TestListEndpoints(t *testing.T) {
	h := newTestServer(t, Options{})

	rec, env := do(t, h, http.MethodGet, "/api/tags", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tags []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tags))
	assert.Len(t, tags, len(entities.DefaultTagVocabulary))

	rec, _ = do(t, h, http.MethodGet, "/api/posts", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"status":"ok"`)
}

func TestClientRateLimit(t *testing.T) {
	limiter := infrastructure.NewRateLimiter(time.Minute, 2)
	defer limiter.Stop()
	h := newTestServer(t, Options{ClientLimiter: limiter})

	for i := 0; i < 2; i++ {
		rec, _ := do(t, h, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec, env := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestStatusFor(t *testing.T) {
	status, _ := statusFor(context.DeadlineExceeded)
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, message := statusFor(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", message)
}
