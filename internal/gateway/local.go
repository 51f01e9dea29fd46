package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pagewright/storefront-builder/internal/node"
)

// LocalStore keeps one draft.json and one published.json per tenant under a
// data directory. It is the always-available shadow of the primary store,
// not a cache: entries never expire.
type LocalStore struct {
	dir string
	mu  sync.Mutex
}

var _ Store = (*LocalStore)(nil)

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) path(tenantID, name string) string {
	// tenant ids come from the route; Base strips any traversal attempt
	return filepath.Join(s.dir, filepath.Base(tenantID), name)
}

func (s *LocalStore) LoadDraft(ctx context.Context, tenantID string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(s.path(tenantID, "draft.json"))
}

func (s *LocalStore) SaveDraft(ctx context.Context, tenantID string, doc node.Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := Record{
		TenantID:  tenantID,
		Doc:       doc,
		UpdatedAt: time.Now().UTC(),
	}
	return s.write(s.path(tenantID, "draft.json"), rec)
}

func (s *LocalStore) LoadPublished(ctx context.Context, tenantID string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(s.path(tenantID, "published.json"))
}

// Publish writes the document as the next published version. The version
// counter continues from whatever was published before; the draft file is
// not touched.
func (s *LocalStore) Publish(ctx context.Context, tenantID string, doc node.Layout) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var version int64 = 1
	if prev, err := s.read(s.path(tenantID, "published.json")); err == nil {
		version = prev.Version + 1
	}
	if err := s.publishLocked(tenantID, doc, version); err != nil {
		return 0, err
	}
	return version, nil
}

// PublishAt mirrors a publish decided elsewhere (the primary store) at its
// exact version number.
func (s *LocalStore) PublishAt(ctx context.Context, tenantID string, doc node.Layout, version int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.publishLocked(tenantID, doc, version); err != nil {
		return 0, err
	}
	return version, nil
}

func (s *LocalStore) publishLocked(tenantID string, doc node.Layout, version int64) error {
	now := time.Now().UTC()
	rec := Record{
		TenantID:    tenantID,
		Version:     version,
		Published:   true,
		Doc:         doc,
		UpdatedAt:   now,
		PublishedAt: &now,
	}
	return s.write(s.path(tenantID, "published.json"), rec)
}

func (s *LocalStore) read(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &rec, nil
}

// write replaces the file atomically so a crash mid-write never leaves a
// truncated document behind.
func (s *LocalStore) write(path string, rec Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create tenant dir: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	return os.Rename(tmp, path)
}
