package controllers

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/amaumene/moviedeck/internal/models"
	"github.com/amaumene/moviedeck/internal/services/tmdb"
	"github.com/sirupsen/logrus"
)

// ErrNoMovie is returned when acting on a detail view that holds no movie
var ErrNoMovie = errors.New("no movie loaded")

// DetailView is a snapshot of the detail page
type DetailView struct {
	State       State                `json:"state"`
	ID          int                  `json:"id"`
	Movie       *models.MovieDetails `json:"movie,omitempty"`
	Favorite    bool                 `json:"favorite"`
	PosterURL   string               `json:"poster_url,omitempty"`
	BackdropURL string               `json:"backdrop_url,omitempty"`
	Source      models.Source        `json:"source,omitempty"`
	Error       string               `json:"error,omitempty"`
}

// DetailController shows a single movie
type DetailController struct {
	catalog   Catalog
	favorites Favorites
	logger    *logrus.Logger

	mu         sync.Mutex
	generation uint64
	view       DetailView
}

// NewDetailController creates an idle detail controller
func NewDetailController(catalog Catalog, favorites Favorites, logger *logrus.Logger) *DetailController {
	return &DetailController{
		catalog:   catalog,
		favorites: favorites,
		logger:    logger,
		view:      DetailView{State: StateIdle},
	}
}

// View returns the current snapshot
func (c *DetailController) View() DetailView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Open loads the details of id. Any failure leaves the view in the error
// state with a not-found message. There is no retry.
func (c *DetailController) Open(ctx context.Context, id int) (DetailView, error) {
	c.mu.Lock()
	c.generation++
	generation := c.generation
	c.view = DetailView{State: StateLoading, ID: id}
	c.mu.Unlock()

	result, err := c.catalog.GetDetails(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		c.logger.WithField("movie_id", id).Debug("Discarding stale details response")
		return c.view, ErrSuperseded
	}

	if err != nil {
		if !errors.Is(err, tmdb.ErrNotFound) {
			c.logger.WithError(err).WithField("movie_id", id).Warn("Failed to load movie details")
		}
		c.view.State = StateError
		c.view.Error = NotFoundMessage
		return c.view, err
	}

	details := result.Data
	c.view = DetailView{
		State:       StateReady,
		ID:          id,
		Movie:       &details,
		Favorite:    c.favorites.Contains(id),
		PosterURL:   c.catalog.ImageURL(details.PosterPath, tmdb.DefaultImageSize),
		BackdropURL: c.catalog.ImageURL(details.BackdropPath, "original"),
		Source:      result.Source,
	}
	return c.view, nil
}

// ToggleFavorite flips the displayed movie in the favorites store
func (c *DetailController) ToggleFavorite() (DetailView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view.State != StateReady {
		return c.view, ErrNoMovie
	}

	c.view.Favorite = slices.Contains(c.favorites.Toggle(c.view.ID), c.view.ID)
	return c.view, nil
}
