package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	expiry time.Time
	value  string
}

// memoryTenant holds one tenant's segments. At most two versions are alive:
// the current one and the previous one kept as a stale fallback.
type memoryTenant struct {
	segments map[int64]map[string]memoryEntry
	version  int64
}

type MemoryCache struct {
	mu      sync.RWMutex
	tenants map[string]*memoryTenant
	ttl     time.Duration
}

var _ PageCache = (*MemoryCache)(nil)

func newMemoryCache(ttl time.Duration) *MemoryCache {
	c := &MemoryCache{
		tenants: make(map[string]*memoryTenant),
		ttl:     ttl,
	}
	go c.reapLoop(ttl)
	return c
}

func (c *MemoryCache) Generation(tenantID string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if t, ok := c.tenants[tenantID]; ok {
		return t.version
	}
	return 0
}

func (c *MemoryCache) Get(ctx context.Context, tenantID, key string) (string, bool, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tenants[tenantID]
	if !ok {
		return "", false, true, nil
	}

	if seg, ok := t.segments[t.version]; ok {
		if entry, found := seg[key]; found {
			if time.Now().After(entry.expiry) {
				// expired; the reaper collects it later
				return "", false, true, nil
			}
			return entry.value, true, true, nil
		}
	}

	for version, seg := range t.segments {
		if version == t.version {
			continue
		}
		if entry, found := seg[key]; found {
			if time.Now().After(entry.expiry) {
				return "", false, true, nil
			}
			return entry.value, true, false, nil
		}
	}

	return "", false, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, tenantID, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.tenant(tenantID)
	if t.segments[t.version] == nil {
		t.segments[t.version] = make(map[string]memoryEntry)
	}
	t.segments[t.version][key] = memoryEntry{
		expiry: time.Now().Add(c.ttl),
		value:  value,
	}
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, tenantID, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.tenants[tenantID]; ok {
		for _, seg := range t.segments {
			delete(seg, key)
		}
	}
	return nil
}

// Cycle moves a tenant to a new publish version. The previous version's
// segment survives one cycle as a fallback; force drops everything but the
// new segment immediately.
func (c *MemoryCache) Cycle(tenantID string, version int64, force bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.tenant(tenantID)
	oldVersion := t.version
	t.version = version
	if t.segments[version] == nil {
		t.segments[version] = make(map[string]memoryEntry)
	}

	for v := range t.segments {
		if v == version {
			continue
		}
		if force || v != oldVersion {
			delete(t.segments, v)
		}
	}
	return nil
}

// tenant returns the segment holder, creating it on first touch. Callers
// hold the write lock.
func (c *MemoryCache) tenant(tenantID string) *memoryTenant {
	t, ok := c.tenants[tenantID]
	if !ok {
		t = &memoryTenant{segments: make(map[int64]map[string]memoryEntry)}
		c.tenants[tenantID] = t
	}
	return t
}

func (c *MemoryCache) reapLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		c.reap()
	}
}

func (c *MemoryCache) reap() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for _, t := range c.tenants {
		for _, seg := range t.segments {
			for key, entry := range seg {
				if now.After(entry.expiry) {
					delete(seg, key)
				}
			}
		}
	}
}
