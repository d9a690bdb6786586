package sentiment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Cache stores polarity scores by key. Implementations swallow their own
// errors; a failed lookup is a miss.
type Cache interface {
	Get(ctx context.Context, key string) (float64, bool)
	Set(ctx context.Context, key string, polarity float64)
}

// CacheKey hashes text so arbitrary messages make safe, bounded keys. The
// namespace names the analyzer that produced the score, so backends sharing
// one cache never read each other's values.
func CacheKey(namespace, text string) string {
	hash := sha256.Sum256([]byte(text))
	return namespace + ":" + hex.EncodeToString(hash[:])
}

// Cached memoizes an analyzer's successful answers. Errors are not cached.
type Cached struct {
	analyzer  Analyzer
	cache     Cache
	namespace string
}

func NewCached(analyzer Analyzer, cache Cache, namespace string) *Cached {
	return &Cached{analyzer: analyzer, cache: cache, namespace: namespace}
}

func (c *Cached) Polarity(ctx context.Context, text string) (float64, error) {
	key := CacheKey(c.namespace, text)
	if p, ok := c.cache.Get(ctx, key); ok {
		return p, nil
	}

	p, err := c.analyzer.Polarity(ctx, text)
	if err != nil {
		return 0, err
	}
	c.cache.Set(ctx, key, p)
	return p, nil
}

// MemoryCache is a process-local Cache. When MaxEntries is reached the whole
// map is dropped and refilled.
type MemoryCache struct {
	MaxEntries int

	mu     sync.RWMutex
	scores map[string]float64
}

func NewMemoryCache(maxEntries int) *MemoryCache {
	return &MemoryCache{
		MaxEntries: maxEntries,
		scores:     make(map[string]float64),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.scores[key]
	return p, ok
}

func (m *MemoryCache) Set(_ context.Context, key string, polarity float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.MaxEntries > 0 && len(m.scores) >= m.MaxEntries {
		m.scores = make(map[string]float64)
	}
	m.scores[key] = polarity
}

func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.scores)
}
