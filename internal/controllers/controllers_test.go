package controllers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/amaumene/moviedeck/internal/config"
	"github.com/amaumene/moviedeck/internal/favorites"
	"github.com/amaumene/moviedeck/internal/metrics"
	"github.com/amaumene/moviedeck/internal/models"
	"github.com/amaumene/moviedeck/internal/services/tmdb"
	"github.com/amaumene/moviedeck/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newGateway(t *testing.T) *tmdb.Gateway {
	t.Helper()
	cfg := &config.Config{TMDBImageBaseURL: "https://image.tmdb.org/t/p"}
	return tmdb.NewGateway(cfg, tmdb.DefaultFallback(), metrics.New(), noop.NewTracerProvider(), utils.NewDiscardLogger())
}

func newStore() *favorites.Store {
	return favorites.NewStore(favorites.NewMemoryStorage(), favorites.StorageKey, nil, utils.NewDiscardLogger())
}

// gatedCatalog holds popular pages and details ids listed in gates until
// their channel is closed, and fails details ids listed in failing
type gatedCatalog struct {
	*tmdb.Gateway
	pages   map[int]chan struct{}
	details map[int]chan struct{}
	failing map[int]error

	mu      sync.Mutex
	started map[int]int
}

func newGatedCatalog(t *testing.T) *gatedCatalog {
	return &gatedCatalog{
		Gateway: newGateway(t),
		pages:   map[int]chan struct{}{},
		details: map[int]chan struct{}{},
		failing: map[int]error{},
		started: map[int]int{},
	}
}

func (g *gatedCatalog) ListPopular(ctx context.Context, page int) (tmdb.Result[models.PageResult], error) {
	if gate, ok := g.pages[page]; ok {
		<-gate
	}
	return g.Gateway.ListPopular(ctx, page)
}

func (g *gatedCatalog) GetDetails(ctx context.Context, id int) (tmdb.Result[models.MovieDetails], error) {
	g.mu.Lock()
	g.started[id]++
	g.mu.Unlock()

	if gate, ok := g.details[id]; ok {
		<-gate
	}
	if err, ok := g.failing[id]; ok {
		return tmdb.Result[models.MovieDetails]{}, err
	}
	return g.Gateway.GetDetails(ctx, id)
}

func TestListStartsIdle(t *testing.T) {
	c := NewListController(newGateway(t), newStore(), utils.NewDiscardLogger())

	view := c.View()
	assert.Equal(t, StateIdle, view.State)
	assert.Equal(t, 1, view.Page)
	assert.Empty(t, view.Results)
}

func TestListPopularPage(t *testing.T) {
	store := newStore()
	store.Toggle(3)
	c := NewListController(newGateway(t), store, utils.NewDiscardLogger())

	view, err := c.SetPage(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, StateReady, view.State)
	assert.False(t, view.SearchMode)
	assert.Len(t, view.Results, 20)
	assert.Equal(t, 1, view.TotalPages)
	assert.Equal(t, 20, view.TotalResults)
	assert.Equal(t, models.SourceFallback, view.Source)

	for _, card := range view.Results {
		assert.Equal(t, card.ID == 3, card.Favorite, "movie %d", card.ID)
		assert.NotEmpty(t, card.PosterURL)
	}
}

func TestListPageBeyondEnd(t *testing.T) {
	c := NewListController(newGateway(t), newStore(), utils.NewDiscardLogger())

	view, err := c.SetPage(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, StateReady, view.State)
	assert.Empty(t, view.Results)
	assert.Equal(t, 1, view.TotalPages)
}

func TestListInvalidPage(t *testing.T) {
	c := NewListController(newGateway(t), newStore(), utils.NewDiscardLogger())

	view, err := c.SetPage(context.Background(), 0)
	assert.ErrorIs(t, err, tmdb.ErrInvalidPage)
	assert.Equal(t, StateError, view.State)
	assert.NotEmpty(t, view.Error)
}

func TestListSearchAndReset(t *testing.T) {
	c := NewListController(newGateway(t), newStore(), utils.NewDiscardLogger())
	ctx := context.Background()

	view, err := c.Submit(ctx, "  Godfather ")
	require.NoError(t, err)
	assert.True(t, view.SearchMode)
	assert.Equal(t, "Godfather", view.Query)
	require.Len(t, view.Results, 1)
	assert.Equal(t, 2, view.Results[0].ID)
	assert.Equal(t, 1, view.TotalPages)

	// Paging while searching stays on the search
	view, err = c.SetPage(ctx, 2)
	require.NoError(t, err)
	assert.True(t, view.SearchMode)
	assert.Equal(t, 2, view.Page)
	assert.Empty(t, view.Results)

	view, err = c.Submit(ctx, "   ")
	require.NoError(t, err)
	assert.False(t, view.SearchMode)
	assert.Empty(t, view.Query)
	assert.Equal(t, 1, view.Page)
	assert.Len(t, view.Results, 20)
}

func TestListSearchWithoutResultsSuggests(t *testing.T) {
	c := NewListController(newGateway(t), newStore(), utils.NewDiscardLogger())

	view, err := c.Submit(context.Background(), "godfater")
	require.NoError(t, err)
	assert.Empty(t, view.Results)
	assert.Zero(t, view.TotalPages)
	require.NotEmpty(t, view.Suggestions)
	assert.Equal(t, 2, view.Suggestions[0].ID)

	view, err = c.Submit(context.Background(), "Godfather")
	require.NoError(t, err)
	assert.Empty(t, view.Suggestions)
}

func TestListToggleFavorite(t *testing.T) {
	store := newStore()
	c := NewListController(newGateway(t), store, utils.NewDiscardLogger())
	_, err := c.SetPage(context.Background(), 1)
	require.NoError(t, err)

	view := c.ToggleFavorite(7)
	assert.Equal(t, []int{7}, store.Load())
	for _, card := range view.Results {
		assert.Equal(t, card.ID == 7, card.Favorite)
	}

	view = c.ToggleFavorite(7)
	assert.Empty(t, store.Load())
	for _, card := range view.Results {
		assert.False(t, card.Favorite)
	}
}

func TestListDiscardsStaleResponse(t *testing.T) {
	catalog := newGatedCatalog(t)
	gate := make(chan struct{})
	catalog.pages[1] = gate

	c := NewListController(catalog, newStore(), utils.NewDiscardLogger())
	ctx := context.Background()

	type outcome struct {
		view ListView
		err  error
	}
	slow := make(chan outcome)
	go func() {
		view, err := c.SetPage(ctx, 1)
		slow <- outcome{view, err}
	}()

	require.Eventually(t, func() bool {
		return c.View().State == StateLoading
	}, time.Second, 5*time.Millisecond)

	view, err := c.Submit(ctx, "Godfather")
	require.NoError(t, err)
	require.Len(t, view.Results, 1)

	close(gate)
	late := <-slow
	assert.ErrorIs(t, late.err, ErrSuperseded)

	current := c.View()
	assert.True(t, current.SearchMode)
	require.Len(t, current.Results, 1)
	assert.Equal(t, 2, current.Results[0].ID)
}

func TestDetailOpen(t *testing.T) {
	store := newStore()
	store.Toggle(2)
	c := NewDetailController(newGateway(t), store, utils.NewDiscardLogger())

	view, err := c.Open(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, StateReady, view.State)
	require.NotNil(t, view.Movie)
	assert.Equal(t, "The Godfather", view.Movie.Title)
	assert.True(t, view.Favorite)
	assert.Equal(t, models.SourceFallback, view.Source)
	assert.NotEmpty(t, view.PosterURL)
}

func TestDetailNotFound(t *testing.T) {
	c := NewDetailController(newGateway(t), newStore(), utils.NewDiscardLogger())

	view, err := c.Open(context.Background(), 999)
	assert.ErrorIs(t, err, tmdb.ErrNotFound)
	assert.Equal(t, StateError, view.State)
	assert.Equal(t, NotFoundMessage, view.Error)
	assert.Nil(t, view.Movie)

	_, err = c.ToggleFavorite()
	assert.ErrorIs(t, err, ErrNoMovie)
}

func TestDetailToggleFavorite(t *testing.T) {
	store := newStore()
	c := NewDetailController(newGateway(t), store, utils.NewDiscardLogger())
	_, err := c.Open(context.Background(), 5)
	require.NoError(t, err)

	view, err := c.ToggleFavorite()
	require.NoError(t, err)
	assert.True(t, view.Favorite)
	assert.Equal(t, []int{5}, store.Load())

	view, err = c.ToggleFavorite()
	require.NoError(t, err)
	assert.False(t, view.Favorite)
	assert.Empty(t, store.Load())
}

func TestDetailDiscardsStaleResponse(t *testing.T) {
	catalog := newGatedCatalog(t)
	gate := make(chan struct{})
	catalog.details[1] = gate

	c := NewDetailController(catalog, newStore(), utils.NewDiscardLogger())
	ctx := context.Background()

	slow := make(chan error)
	go func() {
		_, err := c.Open(ctx, 1)
		slow <- err
	}()

	require.Eventually(t, func() bool {
		catalog.mu.Lock()
		defer catalog.mu.Unlock()
		return catalog.started[1] == 1
	}, time.Second, 5*time.Millisecond)

	view, err := c.Open(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, view.ID)

	close(gate)
	assert.ErrorIs(t, <-slow, ErrSuperseded)
	assert.Equal(t, 2, c.View().ID)
	assert.Equal(t, "The Godfather", c.View().Movie.Title)
}

func TestFavoritesLoad(t *testing.T) {
	store := newStore()
	for _, id := range []int{3, 1, 2} {
		store.Toggle(id)
	}
	c := NewFavoritesController(newGateway(t), store, 0, utils.NewDiscardLogger())

	view, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateReady, view.State)
	require.Len(t, view.Entries, 3)
	for i, id := range []int{3, 1, 2} {
		assert.Equal(t, id, view.Entries[i].ID)
		assert.NotEmpty(t, view.Entries[i].PosterURL)
	}
}

func TestFavoritesLoadEmpty(t *testing.T) {
	c := NewFavoritesController(newGateway(t), newStore(), 0, utils.NewDiscardLogger())

	view, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateReady, view.State)
	assert.Empty(t, view.Entries)
}

func TestFavoritesLoadIsAllOrNothing(t *testing.T) {
	catalog := newGatedCatalog(t)
	catalog.failing[2] = errors.New("upstream unavailable")

	store := newStore()
	for _, id := range []int{1, 2, 3} {
		store.Toggle(id)
	}
	c := NewFavoritesController(catalog, store, 2, utils.NewDiscardLogger())

	view, err := c.Load(context.Background())
	assert.Error(t, err)
	assert.Equal(t, StateError, view.State)
	assert.Empty(t, view.Entries)

	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	for _, id := range []int{1, 2, 3} {
		assert.Equal(t, 1, catalog.started[id], "movie %d fetched once", id)
	}
}

func TestFavoritesUnknownIDFailsBatch(t *testing.T) {
	store := newStore()
	store.Toggle(1)
	store.Toggle(999)
	c := NewFavoritesController(newGateway(t), store, 0, utils.NewDiscardLogger())

	view, err := c.Load(context.Background())
	assert.ErrorIs(t, err, tmdb.ErrNotFound)
	assert.Equal(t, StateError, view.State)
}

func TestFavoritesRemoveDoesNotRefetch(t *testing.T) {
	catalog := newGatedCatalog(t)
	store := newStore()
	store.Toggle(1)
	store.Toggle(2)
	c := NewFavoritesController(catalog, store, 0, utils.NewDiscardLogger())

	_, err := c.Load(context.Background())
	require.NoError(t, err)

	view := c.Remove(1)
	require.Len(t, view.Entries, 1)
	assert.Equal(t, 2, view.Entries[0].ID)
	assert.Equal(t, []int{2}, store.Load())

	view = c.Remove(1)
	assert.Len(t, view.Entries, 1)

	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	assert.Equal(t, 1, catalog.started[1])
	assert.Equal(t, 1, catalog.started[2])
}

func TestFavoritesDiscardsStaleResponse(t *testing.T) {
	catalog := newGatedCatalog(t)
	gate := make(chan struct{})
	catalog.details[1] = gate

	store := newStore()
	store.Toggle(1)
	store.Toggle(2)
	c := NewFavoritesController(catalog, store, 0, utils.NewDiscardLogger())
	ctx := context.Background()

	slow := make(chan error)
	go func() {
		_, err := c.Load(ctx)
		slow <- err
	}()

	require.Eventually(t, func() bool {
		catalog.mu.Lock()
		defer catalog.mu.Unlock()
		return catalog.started[1] == 1
	}, time.Second, 5*time.Millisecond)

	c.Remove(1)
	view, err := c.Load(ctx)
	require.NoError(t, err)
	require.Len(t, view.Entries, 1)
	assert.Equal(t, 2, view.Entries[0].ID)

	close(gate)
	assert.ErrorIs(t, <-slow, ErrSuperseded)

	view = c.View()
	assert.Equal(t, StateReady, view.State)
	require.Len(t, view.Entries, 1)
	assert.Equal(t, 2, view.Entries[0].ID)
}

func TestRegistrySessions(t *testing.T) {
	storage := favorites.NewMemoryStorage()
	r := NewRegistry(newGateway(t), storage, nil, 0, utils.NewDiscardLogger())

	alice := r.Session("alice")
	assert.Same(t, alice, r.Session("alice"))
	bob := r.Session("bob")
	assert.NotSame(t, alice, bob)
	assert.Equal(t, 2, r.Len())

	alice.List.ToggleFavorite(4)
	assert.True(t, alice.Detail.favorites.Contains(4))
	assert.False(t, bob.Store.Contains(4))

	raw, err := storage.Get(favorites.KeyFor("alice"))
	require.NoError(t, err)
	assert.JSONEq(t, "[4]", string(raw))
}

func TestRegistryPrune(t *testing.T) {
	r := NewRegistry(newGateway(t), favorites.NewMemoryStorage(), nil, 0, utils.NewDiscardLogger())
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	r.Session("old")
	now = now.Add(2 * time.Hour)
	r.Session("fresh")

	assert.Equal(t, 1, r.Prune(time.Hour))
	assert.Equal(t, 1, r.Len())

	// Favorites survive the session
	r.Session("fresh").Store.Toggle(9)
	now = now.Add(3 * time.Hour)
	assert.Equal(t, 1, r.Prune(time.Hour))
	assert.Equal(t, []int{9}, r.Session("fresh").Store.Load())
}

// rejectingStorage starts empty and refuses every write
type rejectingStorage struct {
	mock.Mock
}

func (r *rejectingStorage) Get(key string) ([]byte, error) {
	return nil, nil
}

func (r *rejectingStorage) Put(key string, value []byte) error {
	args := r.Called(key, value)
	return args.Error(0)
}

func TestRegistryPruneKeepsUnsavedFavorites(t *testing.T) {
	storage := &rejectingStorage{}
	storage.On("Put", favorites.KeyFor("unsaved"), mock.Anything).Return(errors.New("disk full"))

	r := NewRegistry(newGateway(t), storage, nil, 0, utils.NewDiscardLogger())
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	r.Session("unsaved").Store.Toggle(7)
	r.Session("idle")
	now = now.Add(3 * time.Hour)

	assert.Equal(t, 1, r.Prune(time.Hour))
	assert.Equal(t, 1, r.Len())
	assert.True(t, r.Session("unsaved").Store.Dirty())
	assert.Equal(t, []int{7}, r.Session("unsaved").Store.Load())
	storage.AssertExpectations(t)
}
