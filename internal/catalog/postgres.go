package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pagewright/storefront-builder/internal/node"
)

// PostgresSource reads summaries from the commerce database. Sort columns
// are mapped from the declarative sort names, never interpolated from user
// input.
type PostgresSource struct {
	pool *pgxpool.Pool
}

var _ Source = (*PostgresSource)(nil)

func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

func sortColumn(sortBy string) string {
	switch sortBy {
	case "name":
		return "name ASC"
	case "price":
		return "price ASC"
	case "price_desc":
		return "price DESC"
	default:
		return "created_at DESC"
	}
}

func (s *PostgresSource) Products(ctx context.Context, q Query) ([]Product, error) {
	base := `SELECT id, name, slug, price, currency, COALESCE(image_url, '') FROM products WHERE tenant_id = $1`
	args := []any{q.TenantID}

	switch q.Source {
	case node.SourceBestSellers:
		base += ` ORDER BY sales_count DESC`
	case node.SourceFeatured:
		base += ` AND is_featured ORDER BY ` + sortColumn(q.SortBy)
	case node.SourceCustom:
		base += ` AND id = ANY($2) ORDER BY ` + sortColumn(q.SortBy)
		args = append(args, q.ProductIDs)
	default: // recent
		base += ` ORDER BY created_at DESC`
	}

	base += fmt.Sprintf(` LIMIT %d`, q.limit())

	rows, err := s.pool.Query(ctx, base, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Price, &p.Currency, &p.Image); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresSource) Categories(ctx context.Context, q Query) ([]Category, error) {
	sql := `SELECT id, name, slug, COALESCE(image_url, '') FROM categories WHERE tenant_id = $1 ORDER BY ` +
		sortColumn(q.SortBy) + fmt.Sprintf(` LIMIT %d`, q.limit())

	rows, err := s.pool.Query(ctx, sql, q.TenantID)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Image); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresSource) Brands(ctx context.Context, q Query) ([]Brand, error) {
	sql := `SELECT id, name, slug, COALESCE(logo_url, '') FROM brands WHERE tenant_id = $1 ORDER BY ` +
		sortColumn(q.SortBy) + fmt.Sprintf(` LIMIT %d`, q.limit())

	rows, err := s.pool.Query(ctx, sql, q.TenantID)
	if err != nil {
		return nil, fmt.Errorf("query brands: %w", err)
	}
	defer rows.Close()

	var out []Brand
	for rows.Next() {
		var b Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.Logo); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
