// Package store provides database access to all raw objects and is the
// single point of truth for "get entity by id". Reads go cache-first, then
// through the defensive fetch path; the backing store is treated as an
// opaque relational service that can fail, return zero rows, or return
// duplicate rows for what should be a unique key.
package store

import (
	"log/slog"
	"time"

	"github.com/craftdeck/craftdeck/internal/apperr"
	"github.com/craftdeck/craftdeck/internal/profile"
	"github.com/craftdeck/craftdeck/store/cache"
)

// Store provides cached, defensively-fetched access to all entities.
type Store struct {
	profile *profile.Profile
	driver  Driver
	history *apperr.History

	// Cache settings
	cacheConfig cache.Config

	// Caches, one per composite kind
	projectCache      *cache.Cache // composite project views
	conversationCache *cache.Cache // composite conversation views
}

// New creates a new instance of Store. The history receives every error the
// store classifies, including degraded-collection warnings that never reach
// the caller's success path.
func New(driver Driver, profile *profile.Profile, history *apperr.History) *Store {
	cacheConfig := cache.Config{
		DefaultTTL:      profile.CacheTTL,
		CleanupInterval: 5 * time.Minute,
		MaxItems:        profile.CacheMaxItems,
		OnEviction:      nil,
	}

	return &Store{
		driver:            driver,
		profile:           profile,
		history:           history,
		cacheConfig:       cacheConfig,
		projectCache:      cache.New(cacheConfig),
		conversationCache: cache.New(cacheConfig),
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	s.projectCache.Close()
	s.conversationCache.Close()

	return s.driver.Close()
}

// InvalidateProject drops the cached composite view for a project id.
func (s *Store) InvalidateProject(id string) {
	s.projectCache.Delete(id)
}

// InvalidateConversation drops the cached composite view for a conversation id.
func (s *Store) InvalidateConversation(id string) {
	s.conversationCache.Delete(id)
}

// classify folds a raw failure into the uniform error shape and records it.
func (s *Store) classify(err error) *apperr.Error {
	return apperr.Classify(err, s.history)
}

// recordWarning logs and records a degraded-collection failure without
// surfacing it to the caller.
func (s *Store) recordWarning(entity, id, collection string, err error) {
	classified := s.classify(err)
	slog.Warn("dependent collection fetch degraded to empty",
		slog.String("entity", entity),
		slog.String("id", id),
		slog.String("collection", collection),
		slog.String("kind", string(classified.Kind)),
		slog.String("error", classified.Error()))
}
