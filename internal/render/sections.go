package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/pagewright/storefront-builder/internal/node"
	"github.com/pagewright/storefront-builder/internal/sanitize"
)

func renderHero(r *Renderer, sec node.Section, _ *sectionData) (template.HTML, error) {
	return r.execute("hero", r.baseData(sec))
}

func renderHeading(r *Renderer, sec node.Section, _ *sectionData) (template.HTML, error) {
	return r.execute("heading", r.baseData(sec))
}

func renderText(r *Renderer, sec node.Section, _ *sectionData) (template.HTML, error) {
	return r.execute("text", r.baseData(sec))
}

func renderBanner(r *Renderer, sec node.Section, _ *sectionData) (template.HTML, error) {
	return r.execute("banner", r.baseData(sec))
}

func renderCTA(r *Renderer, sec node.Section, _ *sectionData) (template.HTML, error) {
	return r.execute("cta", r.baseData(sec))
}

func renderNewsletter(r *Renderer, sec node.Section, _ *sectionData) (template.HTML, error) {
	return r.execute("newsletter", r.baseData(sec))
}

func renderSpacer(r *Renderer, sec node.Section, _ *sectionData) (template.HTML, error) {
	return r.execute("spacer", r.baseData(sec))
}

func renderDivider(r *Renderer, sec node.Section, _ *sectionData) (template.HTML, error) {
	return r.execute("divider", r.baseData(sec))
}

func renderProducts(r *Renderer, sec node.Section, data *sectionData) (template.HTML, error) {
	d := r.baseData(sec)
	d.Products = make([]productView, 0, len(data.Products))
	for _, p := range data.Products {
		d.Products = append(d.Products, productView{Product: p, PriceLabel: r.priceLabel(p)})
	}
	d.Skeletons = r.skeletonCount(sec, len(d.Products))
	return r.execute("products", d)
}

func renderCategories(r *Renderer, sec node.Section, data *sectionData) (template.HTML, error) {
	d := r.baseData(sec)
	d.Categories = data.Categories
	d.Skeletons = r.skeletonCount(sec, len(d.Categories))
	return r.execute("categories", d)
}

func renderBrands(r *Renderer, sec node.Section, data *sectionData) (template.HTML, error) {
	d := r.baseData(sec)
	d.Brands = data.Brands
	d.Skeletons = r.skeletonCount(sec, len(d.Brands))
	return r.execute("brands", d)
}

// Sections of these types carry their content as child blocks; the section
// renderer is a thin grid around the block renderer.

func renderImage(r *Renderer, sec node.Section, _ *sectionData) (template.HTML, error) {
	if len(sec.Blocks) == 0 {
		if r.Mode == Storefront {
			return "", nil
		}
		return `<div class="sf-image sf-skeleton"></div>`, nil
	}
	return r.renderBlocks(sec.Blocks), nil
}

func renderVideo(r *Renderer, sec node.Section, _ *sectionData) (template.HTML, error) {
	d := r.baseData(sec)
	for _, b := range sec.Blocks {
		if b.Type == node.BlockVideo && b.Data.VideoURL != "" {
			d.VideoURL = b.Data.VideoURL
			break
		}
	}
	if d.VideoURL == "" && r.Mode == Storefront {
		return "", nil
	}
	return r.execute("video", d)
}

func renderTestimonials(r *Renderer, sec node.Section, _ *sectionData) (template.HTML, error) {
	return r.blockHostBody(sec, "Add testimonials from the panel on the right.")
}

func renderFeatures(r *Renderer, sec node.Section, _ *sectionData) (template.HTML, error) {
	return r.blockHostBody(sec, "Add features from the panel on the right.")
}

func renderStats(r *Renderer, sec node.Section, _ *sectionData) (template.HTML, error) {
	return r.blockHostBody(sec, "Add stats from the panel on the right.")
}

func renderFAQ(r *Renderer, sec node.Section, _ *sectionData) (template.HTML, error) {
	return r.blockHostBody(sec, "Add questions from the panel on the right.")
}

func renderColumnsSection(r *Renderer, sec node.Section, _ *sectionData) (template.HTML, error) {
	cols := node.ClampColumns(sec.Settings.Columns)
	gap := sec.Settings.Gap
	if gap == 0 {
		gap = 24
	}
	body := r.renderBlocks(sec.Blocks)
	if body == "" && r.Mode == Preview {
		body = `<div class="sf-empty">Drop blocks here.</div>`
	}
	return template.HTML(fmt.Sprintf(
		`<div class="sf-columns" style="--cols: %d; --gap: %dpx">%s</div>`,
		cols, gap, body)), nil
}

// renderCustomHTML sanitizes the merchant markup in BOTH modes. The preview
// is not a trusted surface either; what the merchant sees is what ships.
func renderCustomHTML(r *Renderer, sec node.Section, _ *sectionData) (template.HTML, error) {
	safe := sanitize.HTML(sec.CustomHTML)
	if strings.TrimSpace(safe) == "" {
		if r.Mode == Storefront {
			return "", nil
		}
		return `<div class="sf-empty">Paste your HTML in the panel on the right.</div>`, nil
	}
	return template.HTML(`<div class="sf-custom">` + safe + `</div>`), nil
}

func (r *Renderer) blockHostBody(sec node.Section, hint string) (template.HTML, error) {
	body := r.renderBlocks(sec.Blocks)
	if body != "" {
		cols := sec.Settings.Columns
		if cols == 0 {
			cols = 3
		}
		gap := sec.Settings.Gap
		if gap == 0 {
			gap = 24
		}
		return template.HTML(fmt.Sprintf(
			`<div class="sf-grid" style="--cols: %d; --gap: %dpx">%s</div>`,
			node.ClampColumns(cols), gap, body)), nil
	}
	if r.Mode == Storefront {
		return "", nil
	}
	return template.HTML(`<div class="sf-empty">` + template.HTMLEscapeString(hint) + `</div>`), nil
}
