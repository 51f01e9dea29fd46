package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pagewright/storefront-builder/internal/node"
)

// PostgresStore keeps drafts and published layouts in one table. A tenant
// has at most one draft row (version 0, not published) and one current
// published row carrying the monotonic publish version.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const schema = `
CREATE TABLE IF NOT EXISTS layout_documents (
	id           BIGSERIAL PRIMARY KEY,
	tenant_id    TEXT        NOT NULL,
	is_published BOOLEAN     NOT NULL DEFAULT FALSE,
	version      BIGINT      NOT NULL DEFAULT 0,
	doc          JSONB       NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	published_at TIMESTAMPTZ
);
CREATE UNIQUE INDEX IF NOT EXISTS layout_documents_draft
	ON layout_documents (tenant_id) WHERE NOT is_published;
CREATE UNIQUE INDEX IF NOT EXISTS layout_documents_current
	ON layout_documents (tenant_id) WHERE is_published
`

// EnsureSchema creates the storage objects when they are missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) LoadDraft(ctx context.Context, tenantID string) (*Record, error) {
	return s.load(ctx, tenantID, false)
}

func (s *PostgresStore) LoadPublished(ctx context.Context, tenantID string) (*Record, error) {
	return s.load(ctx, tenantID, true)
}

func (s *PostgresStore) load(ctx context.Context, tenantID string, published bool) (*Record, error) {
	const q = `SELECT version, doc, updated_at, published_at
		FROM layout_documents
		WHERE tenant_id = $1 AND is_published = $2
		ORDER BY version DESC LIMIT 1`

	rec := Record{TenantID: tenantID, Published: published}
	var raw []byte
	err := s.pool.QueryRow(ctx, q, tenantID, published).
		Scan(&rec.Version, &raw, &rec.UpdatedAt, &rec.PublishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	if err := json.Unmarshal(raw, &rec.Doc); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	return &rec, nil
}

func (s *PostgresStore) SaveDraft(ctx context.Context, tenantID string, doc node.Layout) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}

	const q = `INSERT INTO layout_documents (tenant_id, is_published, doc, updated_at)
		VALUES ($1, FALSE, $2, now())
		ON CONFLICT (tenant_id) WHERE NOT is_published
		DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`

	if _, err := s.pool.Exec(ctx, q, tenantID, raw); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Publish supersedes the current published row and inserts the document at
// the next version, all in one transaction. The draft row is untouched:
// publishing is a copy, not a move.
func (s *PostgresStore) Publish(ctx context.Context, tenantID string, doc node.Layout) (int64, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("encode layout: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin publish: %w", err)
	}
	defer tx.Rollback(ctx)

	var version int64
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM layout_documents
			WHERE tenant_id = $1 AND is_published`, tenantID).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("next version: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM layout_documents
			WHERE tenant_id = $1 AND is_published`, tenantID); err != nil {
		return 0, fmt.Errorf("supersede published: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO layout_documents (tenant_id, is_published, version, doc, updated_at, published_at)
			VALUES ($1, TRUE, $2, $3, now(), now())`, tenantID, version, raw); err != nil {
		return 0, fmt.Errorf("insert published: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit publish: %w", err)
	}
	return version, nil
}

// IsMissingTable reports whether err is Postgres undefined_table, the
// signature of a primary that exists but was never migrated. The gateway
// treats it like any other primary failure; this helper only sharpens the
// log line.
func IsMissingTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}
