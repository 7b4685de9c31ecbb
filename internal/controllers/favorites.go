package controllers

import (
	"context"
	"slices"
	"sync"

	"github.com/amaumene/moviedeck/internal/models"
	"github.com/amaumene/moviedeck/internal/services/tmdb"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

// FavoriteEntry is a favorited movie with its full details
type FavoriteEntry struct {
	models.MovieDetails
	PosterURL string `json:"poster_url"`
}

// FavoritesView is a snapshot of the favorites page
type FavoritesView struct {
	State   State           `json:"state"`
	Entries []FavoriteEntry `json:"entries"`
	Error   string          `json:"error,omitempty"`
}

// FavoritesController resolves every favorite to its details
type FavoritesController struct {
	catalog     Catalog
	favorites   Favorites
	concurrency int // 0 means one goroutine per favorite
	logger      *logrus.Logger

	mu         sync.Mutex
	generation uint64
	view       FavoritesView
}

// NewFavoritesController creates an idle favorites controller
func NewFavoritesController(catalog Catalog, favorites Favorites, concurrency int, logger *logrus.Logger) *FavoritesController {
	return &FavoritesController{
		catalog:     catalog,
		favorites:   favorites,
		concurrency: concurrency,
		logger:      logger,
		view:        FavoritesView{State: StateIdle, Entries: []FavoriteEntry{}},
	}
}

// View returns the current snapshot
func (c *FavoritesController) View() FavoritesView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Load reads the favorites once and fetches the details of every id
// concurrently. The batch succeeds or fails as a whole: if any fetch fails
// nothing is shown.
func (c *FavoritesController) Load(ctx context.Context) (FavoritesView, error) {
	c.mu.Lock()
	c.generation++
	generation := c.generation
	c.view = FavoritesView{State: StateLoading, Entries: []FavoriteEntry{}}
	c.mu.Unlock()

	ids := c.favorites.Load()
	details := make([]models.MovieDetails, len(ids))

	p := pool.New()
	if c.concurrency > 0 {
		p = p.WithMaxGoroutines(c.concurrency)
	}
	tasks := p.WithErrors().WithContext(ctx).WithFirstError()
	for i, id := range ids {
		tasks.Go(func(ctx context.Context) error {
			result, err := c.catalog.GetDetails(ctx, id)
			if err != nil {
				return err
			}
			details[i] = result.Data
			return nil
		})
	}
	err := tasks.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		c.logger.Debug("Discarding stale favorites response")
		return c.snapshotLocked(), ErrSuperseded
	}

	if err != nil {
		c.logger.WithError(err).WithField("count", len(ids)).Warn("Failed to resolve favorites")
		c.view.State = StateError
		c.view.Error = err.Error()
		return c.snapshotLocked(), err
	}

	entries := make([]FavoriteEntry, 0, len(details))
	for _, d := range details {
		entries = append(entries, FavoriteEntry{
			MovieDetails: d,
			PosterURL:    c.catalog.ImageURL(d.PosterPath, tmdb.DefaultImageSize),
		})
	}
	c.view.State = StateReady
	c.view.Entries = entries
	return c.snapshotLocked(), nil
}

// Remove drops id from the favorites store and from the displayed list
// without fetching again
func (c *FavoritesController) Remove(id int) FavoritesView {
	c.favorites.Remove(id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Entries = slices.DeleteFunc(slices.Clone(c.view.Entries), func(e FavoriteEntry) bool {
		return e.ID == id
	})
	return c.snapshotLocked()
}

func (c *FavoritesController) snapshotLocked() FavoritesView {
	view := c.view
	view.Entries = slices.Clone(c.view.Entries)
	return view
}
