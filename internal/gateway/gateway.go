// Package gateway persists layout documents. A primary store (Postgres)
// holds drafts and the published version history; a file-backed local store
// shadows every draft write so editing work survives a primary outage. The
// storefront reads published documents, the editor reads and writes drafts.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/pagewright/storefront-builder/internal/node"
)

// ErrNotFound means no document of the requested kind exists for the tenant.
var ErrNotFound = errors.New("layout not found")

// ErrPrimaryUnavailable means the operation completed against the local
// store only. Callers surface this as a degraded success ("saved locally"),
// not a failure.
var ErrPrimaryUnavailable = errors.New("primary store unavailable")

// Record is one stored document with its persistence metadata.
type Record struct {
	TenantID    string      `json:"tenantId"`
	Version     int64       `json:"version"`
	Published   bool        `json:"published"`
	Doc         node.Layout `json:"doc"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	PublishedAt *time.Time  `json:"publishedAt,omitempty"`
}

// Store is the persistence contract shared by the primary and local
// backends. Publish atomically supersedes the previous published version
// and returns the new version number; the draft is left untouched.
type Store interface {
	LoadDraft(ctx context.Context, tenantID string) (*Record, error)
	SaveDraft(ctx context.Context, tenantID string, doc node.Layout) error
	LoadPublished(ctx context.Context, tenantID string) (*Record, error)
	Publish(ctx context.Context, tenantID string, doc node.Layout) (int64, error)
}

// Gateway routes between the primary store and the local fallback. Primary
// may be nil (no database configured); everything then runs on the local
// store and operations report ErrPrimaryUnavailable.
type Gateway struct {
	Local   *LocalStore
	Log     logr.Logger
	Primary Store
}

// SaveDraft writes the local shadow copy first, then the primary. A primary
// failure after a successful local write degrades to ErrPrimaryUnavailable
// instead of failing the save.
func (g *Gateway) SaveDraft(ctx context.Context, tenantID string, doc node.Layout) error {
	if err := g.Local.SaveDraft(ctx, tenantID, doc); err != nil {
		return fmt.Errorf("save draft locally: %w", err)
	}

	if g.Primary == nil {
		return ErrPrimaryUnavailable
	}
	if err := g.Primary.SaveDraft(ctx, tenantID, doc); err != nil {
		g.Log.Error(err, "save draft to primary", "tenant", tenantID, "schemaMissing", IsMissingTable(err))
		return ErrPrimaryUnavailable
	}
	return nil
}

// LoadDraft prefers the primary store and falls back to the local copy when
// the primary is down or has no draft.
func (g *Gateway) LoadDraft(ctx context.Context, tenantID string) (*Record, error) {
	if g.Primary != nil {
		rec, err := g.Primary.LoadDraft(ctx, tenantID)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, ErrNotFound) {
			g.Log.Error(err, "load draft from primary", "tenant", tenantID)
		}
	}
	return g.Local.LoadDraft(ctx, tenantID)
}

// Publish stamps the draft as the next published version. On a primary
// failure the version counter advances in the local store so the storefront
// fallback still serves the newest content.
func (g *Gateway) Publish(ctx context.Context, tenantID string, doc node.Layout) (int64, error) {
	if g.Primary != nil {
		version, err := g.Primary.Publish(ctx, tenantID, doc)
		if err == nil {
			// mirror locally so a later outage serves current content
			if _, lerr := g.Local.PublishAt(ctx, tenantID, doc, version); lerr != nil {
				g.Log.Error(lerr, "mirror published layout", "tenant", tenantID)
			}
			return version, nil
		}
		g.Log.Error(err, "publish to primary", "tenant", tenantID, "schemaMissing", IsMissingTable(err))
		version, lerr := g.Local.Publish(ctx, tenantID, doc)
		if lerr != nil {
			return 0, fmt.Errorf("publish locally: %w", lerr)
		}
		return version, ErrPrimaryUnavailable
	}

	version, err := g.Local.Publish(ctx, tenantID, doc)
	if err != nil {
		return 0, fmt.Errorf("publish locally: %w", err)
	}
	return version, ErrPrimaryUnavailable
}

// LoadPublished prefers the primary store and falls back to the local copy.
func (g *Gateway) LoadPublished(ctx context.Context, tenantID string) (*Record, error) {
	if g.Primary != nil {
		rec, err := g.Primary.LoadPublished(ctx, tenantID)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, ErrNotFound) {
			g.Log.Error(err, "load published from primary", "tenant", tenantID)
		}
	}
	return g.Local.LoadPublished(ctx, tenantID)
}
