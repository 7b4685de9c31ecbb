package controllers

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/amaumene/moviedeck/internal/models"
	"github.com/amaumene/moviedeck/internal/services/tmdb"
	"github.com/sirupsen/logrus"
)

// suggestionLimit caps the titles offered when a search finds nothing
const suggestionLimit = 5

// ListView is a snapshot of the listing page
type ListView struct {
	State        State         `json:"state"`
	Page         int           `json:"page"`
	SearchMode   bool          `json:"search_mode"`
	Query        string        `json:"query,omitempty"`
	Results      []MovieCard   `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
	Source       models.Source `json:"source,omitempty"`
	Error        string        `json:"error,omitempty"`

	// Suggestions are close titles offered when a search has no results
	Suggestions []tmdb.Suggestion `json:"suggestions,omitempty"`
}

// ListController drives the popular listing and the search results
type ListController struct {
	catalog   Catalog
	favorites Favorites
	logger    *logrus.Logger

	mu         sync.Mutex
	generation uint64
	view       ListView
}

// NewListController creates a list controller on popular page 1, idle
func NewListController(catalog Catalog, favorites Favorites, logger *logrus.Logger) *ListController {
	return &ListController{
		catalog:   catalog,
		favorites: favorites,
		logger:    logger,
		view: ListView{
			State:   StateIdle,
			Page:    1,
			Results: []MovieCard{},
		},
	}
}

// View returns the current snapshot
func (c *ListController) View() ListView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SetPage loads page p of the current listing. In search mode the current
// query is searched again at p.
func (c *ListController) SetPage(ctx context.Context, page int) (ListView, error) {
	c.mu.Lock()
	searchMode, query := c.view.SearchMode, c.view.Query
	c.mu.Unlock()

	return c.fetch(ctx, page, searchMode, query)
}

// Submit runs a search for query at page 1. A blank query leaves search mode
// and reloads popular page 1.
func (c *ListController) Submit(ctx context.Context, query string) (ListView, error) {
	query = strings.TrimSpace(query)
	return c.fetch(ctx, 1, query != "", query)
}

// ToggleFavorite flips id in the favorites store and updates the flags of
// the displayed results
func (c *ListController) ToggleFavorite(id int) ListView {
	ids := c.favorites.Toggle(id)

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.view.Results {
		c.view.Results[i].Favorite = slices.Contains(ids, c.view.Results[i].ID)
	}
	return c.snapshotLocked()
}

func (c *ListController) fetch(ctx context.Context, page int, searchMode bool, query string) (ListView, error) {
	c.mu.Lock()
	c.generation++
	generation := c.generation
	c.view = ListView{
		State:      StateLoading,
		Page:       page,
		SearchMode: searchMode,
		Query:      query,
		Results:    []MovieCard{},
	}
	c.mu.Unlock()

	var (
		result tmdb.Result[models.PageResult]
		err    error
	)
	if searchMode {
		result, err = c.catalog.Search(ctx, query, page)
	} else {
		result, err = c.catalog.ListPopular(ctx, page)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		c.logger.WithFields(logrus.Fields{
			"page":  page,
			"query": query,
		}).Debug("Discarding stale listing response")
		return c.snapshotLocked(), ErrSuperseded
	}

	if err != nil {
		c.view.State = StateError
		c.view.Error = err.Error()
		return c.snapshotLocked(), err
	}

	c.view.State = StateReady
	c.view.Results = newCards(c.catalog, result.Data.Results, c.favorites.Load())
	c.view.TotalPages = result.Data.TotalPages
	c.view.TotalResults = result.Data.TotalResults
	c.view.Source = result.Source
	if searchMode && result.Data.TotalResults == 0 {
		c.view.Suggestions = c.catalog.Suggest(query, suggestionLimit)
	}
	return c.snapshotLocked(), nil
}

func (c *ListController) snapshotLocked() ListView {
	view := c.view
	view.Results = slices.Clone(c.view.Results)
	view.Suggestions = slices.Clone(c.view.Suggestions)
	return view
}
