// Package favorites keeps the set of favorited movie ids of a user.
//
// The set is persisted as a JSON array literal (for example [1,2,3]) under a
// single storage key. It has no capacity bound and never expires.
package favorites

import (
	"encoding/json"
	"slices"
	"sync"

	"github.com/amaumene/moviedeck/internal/metrics"
	"github.com/sirupsen/logrus"
)

// StorageKey is the key holding the favorites of the anonymous user
const StorageKey = "movieFavorites"

// KeyFor returns the storage key of a user's favorites
func KeyFor(userID string) string {
	if userID == "" {
		return StorageKey
	}
	return StorageKey + ":" + userID
}

// Store is the single source of truth for favorite membership of one key.
// Every mutation writes the whole set back before returning.
type Store struct {
	storage Storage
	key     string
	metrics *metrics.Metrics // optional
	logger  *logrus.Logger

	mu  sync.Mutex
	ids []int
	// dirty is set when the last write failed; reads then serve ids
	// instead of the stale persisted copy.
	dirty bool
}

// NewStore creates a store over storage for key
func NewStore(storage Storage, key string, m *metrics.Metrics, logger *logrus.Logger) *Store {
	return &Store{
		storage: storage,
		key:     key,
		metrics: m,
		logger:  logger,
		ids:     []int{},
	}
}

// Load reads the persisted set. Absent or malformed data yields an empty set.
func (s *Store) Load() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked()
	return slices.Clone(s.ids)
}

// Contains reports whether id is a favorite
func (s *Store) Contains(id int) bool {
	return slices.Contains(s.Load(), id)
}

// Toggle removes id when present and appends it otherwise
func (s *Store) Toggle(id int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked()
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(slices.Clone(s.ids), i, i+1)
	} else {
		s.ids = append(slices.Clone(s.ids), id)
	}
	s.writeLocked()
	return slices.Clone(s.ids)
}

// Remove deletes id from the set. Removing an absent id is a no-op.
func (s *Store) Remove(id int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked()
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(slices.Clone(s.ids), i, i+1)
		s.writeLocked()
	}
	return slices.Clone(s.ids)
}

// Dirty reports whether the in-memory set holds changes the storage rejected
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Clear empties the set
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = []int{}
	s.writeLocked()
}

func (s *Store) refreshLocked() {
	if s.dirty {
		return
	}

	data, err := s.storage.Get(s.key)
	if err != nil {
		s.logger.WithError(err).WithField("key", s.key).Warn("Failed to read favorites, keeping in-memory copy")
		return
	}
	s.ids = decode(data)
}

func (s *Store) writeLocked() {
	data, err := json.Marshal(s.ids)
	if err == nil {
		err = s.storage.Put(s.key, data)
	}

	if err != nil {
		s.dirty = true
		s.count("error")
		s.logger.WithError(err).WithField("key", s.key).Warn("Failed to persist favorites, change kept in memory only")
		return
	}
	s.dirty = false
	s.count("ok")
}

func (s *Store) count(result string) {
	if s.metrics != nil {
		s.metrics.FavoritesWrites.WithLabelValues(result).Inc()
	}
}

// decode parses a persisted set, dropping duplicates. Anything that is not
// a JSON array of integers decodes to the empty set.
func decode(data []byte) []int {
	if len(data) == 0 {
		return []int{}
	}

	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return []int{}
	}

	ids := make([]int, 0, len(raw))
	for _, id := range raw {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}
