package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/amaumene/moviedeck/internal/auth"
	"github.com/amaumene/moviedeck/internal/config"
	"github.com/amaumene/moviedeck/internal/controllers"
	"github.com/amaumene/moviedeck/internal/favorites"
	"github.com/amaumene/moviedeck/internal/metrics"
	"github.com/amaumene/moviedeck/internal/models"
	"github.com/amaumene/moviedeck/internal/services/tmdb"
	"github.com/amaumene/moviedeck/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type testEnv struct {
	server  *Server
	storage *favorites.MemoryStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, func(*config.Config) {})
}

func newTestEnvWith(t *testing.T, configure func(*config.Config)) *testEnv {
	t.Helper()
	logger := utils.NewDiscardLogger()
	cfg := &config.Config{
		TMDBImageBaseURL: "https://image.tmdb.org/t/p",
		FavoritesBackend: config.BackendMemory,
		JWTSecret:        "test-secret",
		SessionTTL:       time.Hour,
		ServerPort:       "0",
	}
	configure(cfg)

	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	authService := auth.NewService(cfg, db, logger)
	require.NoError(t, authService.SeedDemo())

	m := metrics.New()
	gateway := tmdb.NewGateway(cfg, tmdb.DefaultFallback(), m, noop.NewTracerProvider(), logger)
	storage := favorites.NewMemoryStorage()
	registry := controllers.NewRegistry(gateway, storage, m, 0, logger)

	return &testEnv{
		server:  NewServer(cfg, gateway, registry, authService, m, logger),
		storage: storage,
	}
}

// do sends a request and returns the status and raw body
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.server.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	status, raw := e.do(t, http.MethodPost, "/api/auth/login", auth.LoginRequest{
		Email:    auth.DemoEmail,
		Password: auth.DemoPassword,
	}, "")
	require.Equal(t, http.StatusOK, status, string(raw))

	var session auth.Session
	require.NoError(t, json.Unmarshal(raw, &session))
	return session.Token
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	status, raw := env.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"healthy"}`, string(raw))
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t)

	status, raw := env.do(t, http.MethodGet, "/status", nil, "")
	require.Equal(t, http.StatusOK, status)

	body := decode[map[string]interface{}](t, raw)
	assert.Equal(t, "fallback", body["mode"])
	assert.Equal(t, "memory", body["favorites_backend"])
	assert.NotContains(t, body, "upstream")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/catalog", "/api/movies/1", "/api/favorites", "/api/me", "/api/movies/popular"} {
		status, _ := env.do(t, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, status, path)

		status, _ = env.do(t, http.MethodGet, path, nil, "garbage")
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}
}

func TestLoginAndMe(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	status, raw := env.do(t, http.MethodGet, "/api/me", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":"1","name":"Demo User","email":"demo@example.com"}`, string(raw))
}

func TestLoginErrors(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, http.MethodPost, "/api/auth/login", auth.LoginRequest{
		Email:    auth.DemoEmail,
		Password: "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, raw := env.do(t, http.MethodPost, "/api/auth/login", auth.LoginRequest{
		Email:    "nope",
		Password: "x",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	body := decode[map[string]interface{}](t, raw)
	assert.Contains(t, body, "fields")
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	req := auth.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}

	status, raw := env.do(t, http.MethodPost, "/api/auth/register", req, "")
	require.Equal(t, http.StatusCreated, status, string(raw))
	session := decode[auth.Session](t, raw)
	assert.Equal(t, "Ada", session.User.Name)

	status, _ = env.do(t, http.MethodPost, "/api/auth/register", req, "")
	assert.Equal(t, http.StatusConflict, status)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	status, _ := env.do(t, http.MethodPost, "/api/auth/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = env.do(t, http.MethodGet, "/api/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestCatalogFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	status, raw := env.do(t, http.MethodGet, "/api/catalog", nil, token)
	require.Equal(t, http.StatusOK, status)
	view := decode[controllers.ListView](t, raw)
	assert.Equal(t, controllers.StateReady, view.State)
	assert.Len(t, view.Results, 20)
	assert.Equal(t, models.SourceFallback, view.Source)

	status, raw = env.do(t, http.MethodPost, "/api/catalog/search", map[string]string{"query": "godfather"}, token)
	require.Equal(t, http.StatusOK, status)
	view = decode[controllers.ListView](t, raw)
	assert.True(t, view.SearchMode)
	require.Len(t, view.Results, 1)
	assert.Equal(t, 2, view.Results[0].ID)
	assert.Equal(t, 1, view.TotalPages)

	status, raw = env.do(t, http.MethodPost, "/api/catalog/favorites/2", nil, token)
	require.Equal(t, http.StatusOK, status)
	view = decode[controllers.ListView](t, raw)
	assert.True(t, view.Results[0].Favorite)

	status, _ = env.do(t, http.MethodPost, "/api/catalog/page", map[string]int{"page": 0}, token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = env.do(t, http.MethodPost, "/api/catalog/search", map[string]string{"query": " "}, token)
	require.Equal(t, http.StatusOK, status)
	view = decode[controllers.ListView](t, raw)
	assert.False(t, view.SearchMode)
	assert.Equal(t, 1, view.Page)
	assert.Len(t, view.Results, 20)
}

func TestMovieDetails(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	status, raw := env.do(t, http.MethodGet, "/api/movies/2", nil, token)
	require.Equal(t, http.StatusOK, status)
	view := decode[controllers.DetailView](t, raw)
	require.NotNil(t, view.Movie)
	assert.Equal(t, "The Godfather", view.Movie.Title)
	assert.False(t, view.Favorite)

	status, raw = env.do(t, http.MethodPost, "/api/movies/2/favorite", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[controllers.DetailView](t, raw).Favorite)

	status, _ = env.do(t, http.MethodPost, "/api/movies/3/favorite", nil, token)
	assert.Equal(t, http.StatusConflict, status)

	status, raw = env.do(t, http.MethodGet, "/api/movies/999", nil, token)
	assert.Equal(t, http.StatusNotFound, status)
	view = decode[controllers.DetailView](t, raw)
	assert.Equal(t, controllers.StateError, view.State)
	assert.Equal(t, controllers.NotFoundMessage, view.Error)

	status, _ = env.do(t, http.MethodGet, "/api/movies/abc", nil, token)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMovieDetailsUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(upstream.Close)

	env := newTestEnvWith(t, func(cfg *config.Config) {
		cfg.TMDBAPIKey = "live-key"
		cfg.TMDBBaseURL = upstream.URL
		cfg.TMDBTimeout = time.Second
	})
	token := env.login(t)

	// Without a local record the failure surfaces as a gateway error
	status, raw := env.do(t, http.MethodGet, "/api/movies/555", nil, token)
	assert.Equal(t, http.StatusBadGateway, status)
	view := decode[controllers.DetailView](t, raw)
	assert.Equal(t, controllers.StateError, view.State)
	assert.Equal(t, controllers.NotFoundMessage, view.Error)

	status, raw = env.do(t, http.MethodGet, "/api/movies/2", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "The Godfather", decode[controllers.DetailView](t, raw).Movie.Title)
}

func TestFavoritesPage(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	for _, id := range []string{"1", "2"} {
		status, _ := env.do(t, http.MethodPost, "/api/catalog/favorites/"+id, nil, token)
		require.Equal(t, http.StatusOK, status)
	}

	status, raw := env.do(t, http.MethodGet, "/api/favorites", nil, token)
	require.Equal(t, http.StatusOK, status)
	view := decode[controllers.FavoritesView](t, raw)
	require.Len(t, view.Entries, 2)
	assert.Equal(t, 1, view.Entries[0].ID)
	assert.Equal(t, 2, view.Entries[1].ID)

	status, raw = env.do(t, http.MethodDelete, "/api/favorites/1", nil, token)
	require.Equal(t, http.StatusOK, status)
	view = decode[controllers.FavoritesView](t, raw)
	require.Len(t, view.Entries, 1)
	assert.Equal(t, 2, view.Entries[0].ID)

	stored, err := env.storage.Get(favorites.KeyFor(auth.DemoID))
	require.NoError(t, err)
	assert.JSONEq(t, "[2]", string(stored))
}

func TestRawGatewayRoutes(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	status, raw := env.do(t, http.MethodGet, "/api/movies/popular?page=1", nil, token)
	require.Equal(t, http.StatusOK, status)
	popular := decode[tmdb.Result[models.PageResult]](t, raw)
	assert.Equal(t, models.SourceFallback, popular.Source)
	assert.Len(t, popular.Data.Results, 20)

	status, _ = env.do(t, http.MethodGet, "/api/movies/popular?page=0", nil, token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = env.do(t, http.MethodGet, "/api/movies/search?query=Godfather", nil, token)
	require.Equal(t, http.StatusOK, status)
	search := decode[tmdb.Result[models.PageResult]](t, raw)
	require.Len(t, search.Data.Results, 1)
	assert.Equal(t, 2, search.Data.Results[0].ID)

	status, _ = env.do(t, http.MethodGet, "/api/movies/search", nil, token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = env.do(t, http.MethodGet, "/api/movies/suggest?query=godfater", nil, token)
	require.Equal(t, http.StatusOK, status)
	suggest := decode[struct {
		Suggestions []tmdb.Suggestion `json:"suggestions"`
	}](t, raw)
	require.NotEmpty(t, suggest.Suggestions)
	assert.Equal(t, 2, suggest.Suggestions[0].ID)
}

func TestImages(t *testing.T) {
	env := newTestEnv(t)

	status, raw := env.do(t, http.MethodGet, "/api/images", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"url":"/placeholder-movie.svg"}`, string(raw))

	status, raw = env.do(t, http.MethodGet, "/api/images?path=/abc.jpg&size=w200", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"url":"https://image.tmdb.org/t/p/w200/abc.jpg"}`, string(raw))
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodGet, "/health", nil, "")

	status, raw := env.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(string(raw), `moviedeck_http_requests_total{method="GET",route="/health",status="200"} 1`), string(raw))
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	status, raw := env.do(t, http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, string(raw), "error")
}
