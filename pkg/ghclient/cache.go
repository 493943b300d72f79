package ghclient

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sassman/gh-pr-lander/pkg/logger"
)

var cacheLog = logger.New("ghclient:cache")

// DefaultCacheTTL is how long cached responses stay fresh.
const DefaultCacheTTL = 5 * time.Minute

// CachedResponse is one cache entry: an opaque JSON blob plus its timestamp.
type CachedResponse struct {
	Data     json.RawMessage `json:"data"`
	CachedAt time.Time       `json:"cached_at"`
}

// APICache is a file-backed key/value cache for API responses. The on-disk
// format is an opaque JSON blob; only this package interprets it.
type APICache struct {
	mu      sync.Mutex
	path    string
	ttl     time.Duration
	entries map[string]CachedResponse
}

// NewAPICache loads (or initializes) the cache at path. Load failures start
// an empty cache; a broken cache file is never fatal.
func NewAPICache(path string) *APICache {
	cache := &APICache{
		path:    path,
		ttl:     DefaultCacheTTL,
		entries: make(map[string]CachedResponse),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cache
	}
	if err := json.Unmarshal(data, &cache.entries); err != nil {
		cacheLog.Printf("Discarding unreadable cache file %s: %v", path, err)
		cache.entries = make(map[string]CachedResponse)
	}
	return cache
}

// Get unmarshals a fresh entry into out. Stale or missing entries miss.
func (c *APICache) Get(key string, out any) bool {
	c.mu.Lock()
	entry, ok := c.entries[key]
	ttl := c.ttl
	c.mu.Unlock()
	if !ok || time.Since(entry.CachedAt) > ttl {
		return false
	}
	if err := json.Unmarshal(entry.Data, out); err != nil {
		cacheLog.Printf("Dropping undecodable cache entry %q: %v", key, err)
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return false
	}
	return true
}

// Put stores value under key and persists the cache file.
func (c *APICache) Put(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		cacheLog.Printf("Failed to encode cache entry %q: %v", key, err)
		return
	}
	c.mu.Lock()
	c.entries[key] = CachedResponse{Data: data, CachedAt: time.Now()}
	c.mu.Unlock()
	c.save()
}

func (c *APICache) save() {
	c.mu.Lock()
	data, err := json.Marshal(c.entries)
	path := c.path
	c.mu.Unlock()
	if err != nil || path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		cacheLog.Printf("Failed to write cache file %s: %v", path, err)
	}
}

// Len returns the number of entries (fresh or stale).
func (c *APICache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func cacheKeyFor(parts ...any) string {
	key := "v1"
	for _, p := range parts {
		key += fmt.Sprintf("|%v", p)
	}
	return key
}
