package controllers

import (
	"sync"
	"time"

	"github.com/amaumene/moviedeck/internal/favorites"
	"github.com/amaumene/moviedeck/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Session groups the views of one user around that user's favorites
type Session struct {
	UserID    string
	Store     *favorites.Store
	List      *ListController
	Detail    *DetailController
	Favorites *FavoritesController

	lastUsed time.Time
}

// Registry hands out one Session per user
type Registry struct {
	catalog     Catalog
	storage     favorites.Storage
	metrics     *metrics.Metrics
	concurrency int
	logger      *logrus.Logger
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry. Favorites of every session are
// kept in storage under favorites.KeyFor(userID).
func NewRegistry(catalog Catalog, storage favorites.Storage, m *metrics.Metrics, concurrency int, logger *logrus.Logger) *Registry {
	return &Registry{
		catalog:     catalog,
		storage:     storage,
		metrics:     m,
		concurrency: concurrency,
		logger:      logger,
		now:         time.Now,
		sessions:    make(map[string]*Session),
	}
}

// Session returns the session of userID, creating it on first use
func (r *Registry) Session(userID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[userID]; ok {
		s.lastUsed = r.now()
		return s
	}

	store := favorites.NewStore(r.storage, favorites.KeyFor(userID), r.metrics, r.logger)
	s := &Session{
		UserID:    userID,
		Store:     store,
		List:      NewListController(r.catalog, store, r.logger),
		Detail:    NewDetailController(r.catalog, store, r.logger),
		Favorites: NewFavoritesController(r.catalog, store, r.concurrency, r.logger),
		lastUsed:  r.now(),
	}
	r.sessions[userID] = s

	r.logger.WithField("user_id", userID).Debug("Created view session")
	return s
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Prune drops sessions unused for longer than maxIdle and returns how many
// were dropped. Sessions whose favorites could not be persisted are kept,
// their store holds the only copy.
func (r *Registry) Prune(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	pruned := 0
	for id, s := range r.sessions {
		if s.lastUsed.Before(cutoff) && !s.Store.Dirty() {
			delete(r.sessions, id)
			pruned++
		}
	}
	return pruned
}
