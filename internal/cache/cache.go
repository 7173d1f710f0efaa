// Package cache provides the TTL-aware persistent cache for branch data,
// layered on the shared key/value store.
package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"ramos/internal/config"
	"ramos/internal/domain"
	"ramos/internal/logging"
	"ramos/internal/ports"
)

// keyPrefix namespaces cache entries inside the shared key/value store so
// they never collide with configuration or other persisted data.
const keyPrefix = "cache_"

// Maintenance advisory thresholds.
const (
	maintenanceTotalThreshold   = 100
	maintenanceExpiredThreshold = 20
)

// PersistentCache stores pipeline results keyed by "<stage>:<owner>/<repo>".
// Get and Has never filter by age: callers distinguish "never fetched" from
// "fetched but stale" by checking the entry timestamp against the configured
// duration themselves.
type PersistentCache struct {
	kv     ports.KeyValueStore
	config *config.Store
	now    func() time.Time
}

// New creates a PersistentCache over the given store.
func New(kv ports.KeyValueStore, cfg *config.Store) *PersistentCache {
	return &PersistentCache{kv: kv, config: cfg, now: time.Now}
}

// Get returns the cached entry for key, if present. Expired entries are
// returned as-is.
func (c *PersistentCache) Get(key string) (domain.CacheEntry, bool, error) {
	raw, ok, err := c.kv.Get(keyPrefix + key)
	if err != nil || !ok {
		return domain.CacheEntry{}, false, err
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return domain.CacheEntry{}, false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	return entry, true, nil
}

// Set writes an entry for key, overwriting unconditionally.
func (c *PersistentCache) Set(key string, entry domain.CacheEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}
	return c.kv.Set(keyPrefix+key, string(raw))
}

// Has reports whether key exists, regardless of expiration.
func (c *PersistentCache) Has(key string) (bool, error) {
	_, ok, err := c.kv.Get(keyPrefix + key)
	return ok, err
}

// Delete removes a single entry.
func (c *PersistentCache) Delete(key string) error {
	return c.kv.Delete(keyPrefix + key)
}

// Cleanup removes every entry older than maxAge and returns the count
// removed. A non-positive maxAge uses the configured cache duration.
func (c *PersistentCache) Cleanup(maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		maxAge = c.config.Duration(config.CacheDuration)
	}

	keys, err := c.kv.Keys(keyPrefix)
	if err != nil {
		return 0, err
	}

	now := c.now()
	var expired []string
	for _, storageKey := range keys {
		entry, ok, err := c.load(storageKey)
		if err != nil || !ok {
			continue
		}
		if entry.Timestamp > 0 && !entry.Fresh(now, maxAge) {
			expired = append(expired, storageKey)
		}
	}

	if len(expired) > 0 {
		if err := c.kv.DeleteMany(expired); err != nil {
			return 0, err
		}
		logging.Logger.Info("Cleaned up expired cache entries", "count", len(expired))
	}

	return len(expired), nil
}

// Stats summarizes the namespace. A non-positive maxAge uses the configured
// cache duration to split valid from expired.
func (c *PersistentCache) Stats(maxAge time.Duration) (domain.CacheStats, error) {
	if maxAge <= 0 {
		maxAge = c.config.Duration(config.CacheDuration)
	}

	keys, err := c.kv.Keys(keyPrefix)
	if err != nil {
		return domain.CacheStats{}, err
	}

	now := c.now()
	stats := domain.CacheStats{Total: len(keys)}
	for _, storageKey := range keys {
		raw, ok, err := c.kv.Get(storageKey)
		if err != nil || !ok {
			continue
		}

		// Rough serialized size, matching what is actually stored
		stats.EstimatedSizeBytes += len(raw)

		var entry domain.CacheEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			continue
		}
		if entry.Timestamp > 0 && !entry.Fresh(now, maxAge) {
			stats.Expired++
		} else {
			stats.Valid++
		}
	}

	return stats, nil
}

// Clear removes every entry under the cache namespace and returns the count.
func (c *PersistentCache) Clear() (int, error) {
	keys, err := c.kv.Keys(keyPrefix)
	if err != nil {
		return 0, err
	}
	if len(keys) > 0 {
		if err := c.kv.DeleteMany(keys); err != nil {
			return 0, err
		}
		logging.Logger.Info("Cleared cache entries", "count", len(keys))
	}
	return len(keys), nil
}

// PerformMaintenance logs stats, runs a cleanup with the configured duration,
// and emits an advisory warning when the namespace has grown large. Errors
// are returned for logging by the caller but are never fatal to the app.
func (c *PersistentCache) PerformMaintenance() error {
	stats, err := c.Stats(0)
	if err != nil {
		return fmt.Errorf("cache stats failed: %w", err)
	}
	logging.Logger.Info("Cache stats",
		"total", stats.Total,
		"valid", stats.Valid,
		"expired", stats.Expired,
		"estimated_size_bytes", stats.EstimatedSizeBytes,
	)

	cleaned, err := c.Cleanup(0)
	if err != nil {
		return fmt.Errorf("cache cleanup failed: %w", err)
	}
	logging.Logger.Info("Cleaned up expired entries", "count", cleaned)

	if stats.Total > maintenanceTotalThreshold || stats.Expired > maintenanceExpiredThreshold {
		logging.Logger.Warn("Cache is getting large, consider clearing it",
			"total", stats.Total,
			"expired", stats.Expired,
			"estimated_size_kb", stats.EstimatedSizeBytes/1024,
		)
	}

	return nil
}

// load fetches and decodes an entry by its raw storage key.
func (c *PersistentCache) load(storageKey string) (domain.CacheEntry, bool, error) {
	raw, ok, err := c.kv.Get(storageKey)
	if err != nil || !ok {
		return domain.CacheEntry{}, false, err
	}
	var entry domain.CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return domain.CacheEntry{}, false, err
	}
	return entry, true, nil
}
