package cache

import (
	"encoding/json"
	"time"

	"veracity/internal/model"
)

// Store is the typed, content-addressed view over a Cache that the
// pipeline uses. Entries are marshaled whole; a corrupt or expired
// entry reads as a miss. A nil Store degrades to cache-bypass: every
// lookup misses and every write is dropped.
type Store struct {
	cache Cache
	ttl   time.Duration
}

// NewStore creates a typed store over the given cache
func NewStore(c Cache, ttl time.Duration) *Store {
	return &Store{cache: c, ttl: ttl}
}

// Lookup returns the entry for a key, or false on a miss
func (s *Store) Lookup(key string) (*model.CacheEntry, bool) {
	if s == nil || s.cache == nil {
		return nil, false
	}

	data, found := s.cache.Get(key)
	if !found {
		return nil, false
	}

	var entry model.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Treat unreadable entries as absent rather than failing the run
		_ = s.cache.Delete(key)
		return nil, false
	}
	return &entry, true
}

// Write stores a completed entry under its key. Errors are returned
// for logging but callers treat them as non-fatal: an unavailable
// store degrades to cache-bypass.
func (s *Store) Write(key string, entry model.CacheEntry) error {
	if s == nil || s.cache == nil {
		return nil
	}

	entry.Key = key
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.cache.Set(key, data, s.ttl)
}
