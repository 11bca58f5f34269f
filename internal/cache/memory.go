package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type entry struct {
	value   []byte
	expires time.Time
}

// InMemoryCache implements Cache in process memory with a TTL.
// Values are stored encoded so callers never share memory with the cache.
type InMemoryCache struct {
	mu       sync.Mutex
	entries  map[string]entry
	versions map[string]int64
	ttl      time.Duration
	now      func() time.Time
}

// NewInMemoryCache creates an InMemoryCache whose entries expire after ttl.
func NewInMemoryCache(ttl time.Duration) *InMemoryCache {
	return &InMemoryCache{
		entries:  make(map[string]entry),
		versions: make(map[string]int64),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (c *InMemoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && !c.now().Before(e.expires) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(e.value, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *InMemoryCache) Version(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[key], nil
}

func (c *InMemoryCache) SetIfVersion(_ context.Context, key string, version int64, v any) (bool, error) {
	value, err := json.Marshal(v)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[key] != version {
		return false, nil
	}
	c.entries[key] = entry{value: value, expires: c.now().Add(c.ttl)}
	return true, nil
}

func (c *InMemoryCache) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.entries, k)
		c.versions[k]++
	}
	c.mu.Unlock()
	return nil
}
