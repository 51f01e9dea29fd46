package render

import (
	"github.com/pagewright/storefront-builder/internal/catalog"
	"github.com/pagewright/storefront-builder/internal/node"
)

// sectionData is one section's fetched collaborator data. Each data-bound
// section fetches independently so one slow or failed query never empties
// its neighbors.
type sectionData struct {
	Products   []catalog.Product
	Categories []catalog.Category
	Brands     []catalog.Brand
}

// productView decorates a catalog row with its display price, formatted in
// the renderer's language.
type productView struct {
	catalog.Product
	PriceLabel string
}

// tmplData is the contract between the renderers and the template set.
// Skeletons is how many placeholder cards a grid template pads with when
// fewer real rows than requested are available.
type tmplData struct {
	Section     node.Section
	Products    []productView
	Categories  []catalog.Category
	Brands      []catalog.Brand
	Interactive bool
	Skeletons   int
	Label       string
	VideoURL    string
}

func (r *Renderer) baseData(sec node.Section) tmplData {
	return tmplData{Section: sec, Interactive: r.interactive()}
}

// skeletonCount pads a data grid up to the section's requested row count.
// The preview always shows a full grid; the storefront never shows
// skeletons for rows that simply don't exist.
func (r *Renderer) skeletonCount(sec node.Section, have int) int {
	if r.Mode == Storefront {
		return 0
	}
	want := sec.Settings.Limit
	if want <= 0 {
		want = catalog.DefaultLimit
	}
	if have >= want {
		return 0
	}
	return want - have
}
