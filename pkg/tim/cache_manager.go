package tim

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"
)

// CachingPolicy decides which requests are cacheable and for how long.
// Only GET responses are ever cached; writes invalidate instead.
type CachingPolicy struct {
	// ItemsTTL applies to paths under /items.
	ItemsTTL time.Duration

	// UsersTTL applies to paths under /users.
	UsersTTL time.Duration

	// DefaultTTL applies to any other cacheable path.
	DefaultTTL time.Duration
}

// DefaultCachingPolicy returns the default policy: short TTL for items
// (stock levels move), longer for users.
func DefaultCachingPolicy() *CachingPolicy {
	return &CachingPolicy{
		ItemsTTL:   30 * time.Second,
		UsersTTL:   2 * time.Minute,
		DefaultTTL: time.Minute,
	}
}

// ShouldCache reports whether a request is cacheable under this policy.
// Withdrawals ride on GET but mutate stock, so they are excluded.
func (p *CachingPolicy) ShouldCache(method, path string) bool {
	if method != "GET" {
		return false
	}

	return !strings.HasPrefix(path, "/items/withdraw/")
}

// IsWrite reports whether a request mutates backend state. Withdrawals ride
// on GET but decrement stock, so they count as writes.
func (p *CachingPolicy) IsWrite(method, path string) bool {
	if strings.HasPrefix(path, "/items/withdraw/") {
		return true
	}

	return method != "GET" && method != "HEAD" && method != "OPTIONS"
}

// TTLFor returns the TTL for a cacheable path.
func (p *CachingPolicy) TTLFor(path string) time.Duration {
	switch {
	case strings.HasPrefix(path, "/items"):
		return p.ItemsTTL
	case strings.HasPrefix(path, "/users"):
		return p.UsersTTL
	default:
		return p.DefaultTTL
	}
}

// CacheManager keys and invalidates cached responses on top of a Cache
// backend. It tracks the keys it has stored so a write to a resource can
// drop every cached read that the write may have changed.
type CacheManager struct {
	cache   Cache
	options *CacheOptions

	mu   sync.Mutex
	keys map[string]string // cache key -> request path
}

// NewCacheManager creates a manager over the given backend. Nil options use
// DefaultCacheOptions.
func NewCacheManager(cache Cache, options *CacheOptions) *CacheManager {
	if options == nil {
		options = DefaultCacheOptions()
	}

	return &CacheManager{
		cache:   cache,
		options: options,
		keys:    make(map[string]string),
	}
}

// GetCacheKey builds the cache key for a request. Query values are encoded
// in sorted order so equivalent requests share a key.
func (m *CacheManager) GetCacheKey(method, path string, query url.Values) string {
	key := method + " " + path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}

	return key
}

// Get returns a cached entry, or nil when absent or expired.
func (m *CacheManager) Get(ctx context.Context, key string) *CacheEntry {
	entry, err := m.cache.Get(ctx, key)
	if err != nil {
		return nil
	}

	return entry
}

// Set stores data under the key with the given TTL.
func (m *CacheManager) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return m.SetWithETag(ctx, key, data, "", ttl)
}

// SetWithETag stores data with an ETag. Oversized values are silently
// skipped per the configured MaxValueSize.
func (m *CacheManager) SetWithETag(ctx context.Context, key string, data []byte, etag string, ttl time.Duration) error {
	if m.options.MaxValueSize > 0 && len(data) > m.options.MaxValueSize {
		return nil
	}

	if ttl <= 0 {
		ttl = m.options.DefaultTTL
	}

	entry := &CacheEntry{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
		ETag:      etag,
	}

	err := m.cache.Set(ctx, key, entry)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.keys[key] = keyPath(key)
	m.mu.Unlock()

	return nil
}

// Delete drops a single key.
func (m *CacheManager) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.keys, key)
	m.mu.Unlock()

	return m.cache.Delete(ctx, key)
}

// Invalidate drops every cached entry whose path is under the same resource
// root as the written path ("/items/..." drops all item reads, likewise for
// users). A write touching items also invalidates user reads, because users
// embed their owned items; item creation lives under /users/{id}/items/ and
// invalidates both.
func (m *CacheManager) Invalidate(ctx context.Context, writtenPath string) {
	roots := []string{resourceRoot(writtenPath)}
	if strings.Contains(writtenPath, "/items") {
		roots = []string{"/items", "/users"}
	}

	m.mu.Lock()

	var stale []string

	for key, path := range m.keys {
		for _, root := range roots {
			if strings.HasPrefix(path, root) {
				stale = append(stale, key)

				break
			}
		}
	}

	for _, key := range stale {
		delete(m.keys, key)
	}
	m.mu.Unlock()

	for _, key := range stale {
		_ = m.cache.Delete(ctx, key)
	}
}

// Clear drops everything.
func (m *CacheManager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.keys = make(map[string]string)
	m.mu.Unlock()

	return m.cache.Clear(ctx)
}

func keyPath(key string) string {
	_, rest, ok := strings.Cut(key, " ")
	if !ok {
		return key
	}

	path, _, _ := strings.Cut(rest, "?")

	return path
}

func resourceRoot(path string) string {
	trimmed := strings.TrimPrefix(path, "/")

	root, _, _ := strings.Cut(trimmed, "/")

	return "/" + root
}
