package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyCache keys entries as "{tenant:version}:key". The braces keep one
// tenant's generation on a single cluster slot. Version bookkeeping is
// in-process; the entries themselves expire server-side via TTL.
type ValkeyCache struct {
	client   valkey.Client
	mu       sync.RWMutex
	prev     map[string]int64
	ttl      time.Duration
	versions map[string]int64
}

var _ PageCache = (*ValkeyCache)(nil)

func newValkeyCache(client valkey.Client, ttl time.Duration) *ValkeyCache {
	return &ValkeyCache{
		client:   client,
		prev:     make(map[string]int64),
		ttl:      ttl,
		versions: make(map[string]int64),
	}
}

func prefix(tenantID string, version int64) string {
	return fmt.Sprintf("{%s:%d}:", tenantID, version)
}

func (c *ValkeyCache) Generation(tenantID string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.versions[tenantID]
}

func (c *ValkeyCache) Get(ctx context.Context, tenantID, key string) (string, bool, bool, error) {
	c.mu.RLock()
	current := c.versions[tenantID]
	prevVersion, hasPrev := c.prev[tenantID]
	c.mu.RUnlock()

	val, found, err := c.getValue(ctx, prefix(tenantID, current)+key)
	if err != nil || found {
		return val, found, true, err
	}

	if hasPrev {
		val, found, err = c.getValue(ctx, prefix(tenantID, prevVersion)+key)
		if found {
			return val, true, false, err
		}
		if err != nil {
			return "", false, true, err
		}
	}

	return "", false, true, nil
}

func (c *ValkeyCache) Set(ctx context.Context, tenantID, key, value string) error {
	c.mu.RLock()
	current := c.versions[tenantID]
	c.mu.RUnlock()

	cmd := c.client.B().Set().Key(prefix(tenantID, current) + key).Value(value).Px(c.ttl).Build()
	return c.client.Do(ctx, cmd).Error()
}

func (c *ValkeyCache) Delete(ctx context.Context, tenantID, key string) error {
	c.mu.RLock()
	current := c.versions[tenantID]
	prevVersion, hasPrev := c.prev[tenantID]
	c.mu.RUnlock()

	keys := []string{prefix(tenantID, current) + key}
	if hasPrev {
		keys = append(keys, prefix(tenantID, prevVersion)+key)
	}
	cmd := c.client.B().Del().Key(keys...).Build()
	return c.client.Do(ctx, cmd).Error()
}

// Cycle moves a tenant to a new publish version. Old entries are left to
// expire via TTL; they become unreachable once their version falls out of
// the current/previous pair.
func (c *ValkeyCache) Cycle(tenantID string, version int64, force bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if force {
		delete(c.prev, tenantID)
	} else {
		c.prev[tenantID] = c.versions[tenantID]
	}
	c.versions[tenantID] = version
	return nil
}

func (c *ValkeyCache) getValue(ctx context.Context, fullKey string) (string, bool, error) {
	cmd := c.client.B().Get().Key(fullKey).Build()
	val, err := c.client.Do(ctx, cmd).ToString()
	if valkey.IsValkeyNil(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}
