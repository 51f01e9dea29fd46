// Package cache stores rendered storefront pages. Entries are segmented by
// tenant and publish version: publishing cycles a tenant to the new version,
// keeping the previous version's entries as a stale fallback until the next
// cycle evicts them.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"
)

// PageCache is the rendered-page store. Get reports (value, found, fresh):
// fresh is false when the hit came from the previous publish version, which
// callers may serve while re-rendering.
type PageCache interface {
	Cycle(tenantID string, version int64, force bool) error
	Generation(tenantID string) int64
	Get(ctx context.Context, tenantID, key string) (string, bool, bool, error)
	Set(ctx context.Context, tenantID, key, value string) error
	Delete(ctx context.Context, tenantID, key string) error
}

const DefaultTTL = 24 * time.Hour

// New picks the backend from the address: empty means in-process memory,
// anything else is a Valkey endpoint.
func New(addr string, ttl time.Duration) (PageCache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if addr == "" {
		return newMemoryCache(ttl), nil
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		DisableCache: strings.Contains(addr, "127.0.0.1") || strings.Contains(addr, "localhost"),
		InitAddress:  []string{addr},
	})
	if err != nil {
		return nil, err
	}
	return newValkeyCache(client, ttl), nil
}
