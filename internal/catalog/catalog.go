// Package catalog is the read-only query interface to the commerce
// collaborators: product, category and brand summaries scoped by tenant.
// The layout engine never writes through this package; data bindings on a
// section only parameterize these queries.
package catalog

import (
	"context"

	"github.com/pagewright/storefront-builder/internal/node"
)

// Query parameterizes one collaborator lookup. Limit is clamped by the
// implementations; zero means a small default.
type Query struct {
	TenantID   string
	Limit      int
	SortBy     string
	Source     node.ProductSource
	CategoryID string
	ProductIDs []string
}

const DefaultLimit = 8

// Product is the summary shape renderers consume. Price is in minor
// currency units.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
	Image    string `json:"image,omitempty"`
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image,omitempty"`
}

type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Logo string `json:"logo,omitempty"`
}

// Source is implemented by the stores the renderers fetch from.
type Source interface {
	Products(ctx context.Context, q Query) ([]Product, error)
	Categories(ctx context.Context, q Query) ([]Category, error)
	Brands(ctx context.Context, q Query) ([]Brand, error)
}

func (q Query) limit() int {
	if q.Limit <= 0 {
		return DefaultLimit
	}
	return q.Limit
}
