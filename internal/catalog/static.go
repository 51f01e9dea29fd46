package catalog

import (
	"context"
	"sort"

	"github.com/pagewright/storefront-builder/internal/node"
)

// StaticSource serves fixture summaries from memory. It backs development
// setups without a commerce database and the renderer tests.
type StaticSource struct {
	ProductRows  map[string][]Product
	CategoryRows map[string][]Category
	BrandRows    map[string][]Brand
}

var _ Source = (*StaticSource)(nil)

// NewDemoSource returns a StaticSource preloaded with a small demo catalog
// for the given tenant.
func NewDemoSource(tenantID string) *StaticSource {
	return &StaticSource{
		ProductRows: map[string][]Product{tenantID: {
			{ID: "p-1", Name: "Canvas Tote", Slug: "canvas-tote", Price: 2400, Currency: "USD", Image: "/img/tote.jpg"},
			{ID: "p-2", Name: "Enamel Mug", Slug: "enamel-mug", Price: 1800, Currency: "USD", Image: "/img/mug.jpg"},
			{ID: "p-3", Name: "Wool Beanie", Slug: "wool-beanie", Price: 3200, Currency: "USD", Image: "/img/beanie.jpg"},
			{ID: "p-4", Name: "Field Notebook", Slug: "field-notebook", Price: 1200, Currency: "USD", Image: "/img/notebook.jpg"},
		}},
		CategoryRows: map[string][]Category{tenantID: {
			{ID: "c-1", Name: "Bags", Slug: "bags"},
			{ID: "c-2", Name: "Drinkware", Slug: "drinkware"},
			{ID: "c-3", Name: "Stationery", Slug: "stationery"},
		}},
		BrandRows: map[string][]Brand{tenantID: {
			{ID: "b-1", Name: "Northbound", Slug: "northbound"},
			{ID: "b-2", Name: "Fieldcraft", Slug: "fieldcraft"},
		}},
	}
}

func (s *StaticSource) Products(ctx context.Context, q Query) ([]Product, error) {
	rows := append([]Product(nil), s.ProductRows[q.TenantID]...)

	if q.Source == node.SourceCustom {
		wanted := map[string]bool{}
		for _, id := range q.ProductIDs {
			wanted[id] = true
		}
		filtered := rows[:0]
		for _, p := range rows {
			if wanted[p.ID] {
				filtered = append(filtered, p)
			}
		}
		rows = filtered
	}

	switch q.SortBy {
	case "name":
		sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	case "price":
		sort.Slice(rows, func(i, j int) bool { return rows[i].Price < rows[j].Price })
	case "price_desc":
		sort.Slice(rows, func(i, j int) bool { return rows[i].Price > rows[j].Price })
	}

	if len(rows) > q.limit() {
		rows = rows[:q.limit()]
	}
	return rows, nil
}

func (s *StaticSource) Categories(ctx context.Context, q Query) ([]Category, error) {
	rows := append([]Category(nil), s.CategoryRows[q.TenantID]...)
	if q.SortBy == "name" {
		sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	}
	if len(rows) > q.limit() {
		rows = rows[:q.limit()]
	}
	return rows, nil
}

func (s *StaticSource) Brands(ctx context.Context, q Query) ([]Brand, error) {
	rows := append([]Brand(nil), s.BrandRows[q.TenantID]...)
	if q.SortBy == "name" {
		sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	}
	if len(rows) > q.limit() {
		rows = rows[:q.limit()]
	}
	return rows, nil
}
