package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/pagewright/storefront-builder/internal/node"
	"github.com/pagewright/storefront-builder/internal/sanitize"
)

// renderBlocks renders an ordered run of blocks. Blocks are the shared leaf
// vocabulary of both document variants, so this is also the whole renderer
// for the page builder variant.
func (r *Renderer) renderBlocks(blocks []node.Block) template.HTML {
	var buf strings.Builder
	for _, b := range blocks {
		buf.WriteString(string(r.renderBlock(b)))
	}
	return template.HTML(buf.String())
}

// renderBlock renders one block. Unknown block types render nothing on the
// storefront and a flagged placeholder in the preview, mirroring the section
// dispatcher.
func (r *Renderer) renderBlock(b node.Block) template.HTML {
	esc := template.HTMLEscapeString

	var inner string
	switch b.Type {
	case node.BlockHeading:
		level := b.Data.Level
		if level < 1 || level > 6 {
			level = 2
		}
		inner = fmt.Sprintf(`<h%d>%s</h%d>`, level, esc(b.Data.Text), level)

	case node.BlockText:
		inner = fmt.Sprintf(`<p>%s</p>`, esc(b.Data.Text))

	case node.BlockImage:
		if b.Data.ImageURL == "" {
			if r.Mode == Storefront {
				return ""
			}
			inner = `<div class="sf-image sf-skeleton"></div>`
			break
		}
		inner = fmt.Sprintf(`<img src="%s" alt="%s">`, esc(b.Data.ImageURL), esc(b.Data.ImageAlt))

	case node.BlockButton:
		label := b.Data.LinkLabel
		if label == "" {
			label = "Learn more"
		}
		if r.interactive() {
			inner = fmt.Sprintf(`<a class="sf-btn" href="%s">%s</a>`, esc(b.Data.LinkHref), esc(label))
		} else {
			inner = fmt.Sprintf(`<span class="sf-btn" aria-disabled="true">%s</span>`, esc(label))
		}

	case node.BlockVideo:
		if b.Data.VideoURL == "" {
			if r.Mode == Storefront {
				return ""
			}
			inner = `<div class="sf-video sf-skeleton"><span class="sf-play"></span></div>`
			break
		}
		inner = fmt.Sprintf(`<div class="sf-video"><video controls src="%s"></video></div>`, esc(b.Data.VideoURL))

	case node.BlockTestimonials:
		var cards strings.Builder
		for _, t := range b.Data.Testimonials {
			cards.WriteString(`<figure class="sf-testimonial"><blockquote>`)
			cards.WriteString(esc(t.Quote))
			cards.WriteString(`</blockquote><figcaption>`)
			cards.WriteString(esc(t.Author))
			if t.Role != "" {
				cards.WriteString(`<span class="sf-role">` + esc(t.Role) + `</span>`)
			}
			cards.WriteString(`</figcaption></figure>`)
		}
		inner = cards.String()

	case node.BlockFeatures:
		var cards strings.Builder
		for _, f := range b.Data.Features {
			cards.WriteString(`<div class="sf-feature">`)
			if f.Icon != "" {
				cards.WriteString(`<span class="sf-icon">` + esc(f.Icon) + `</span>`)
			}
			cards.WriteString(`<h3>` + esc(f.Title) + `</h3>`)
			if f.Description != "" {
				cards.WriteString(`<p>` + esc(f.Description) + `</p>`)
			}
			cards.WriteString(`</div>`)
		}
		inner = cards.String()

	case node.BlockStats:
		var cards strings.Builder
		for _, s := range b.Data.Stats {
			cards.WriteString(`<div class="sf-stat"><span class="sf-stat-value">` + esc(s.Value) +
				`</span><span class="sf-stat-label">` + esc(s.Label) + `</span></div>`)
		}
		inner = cards.String()

	case node.BlockFAQ:
		var items strings.Builder
		for _, item := range b.Data.Items {
			items.WriteString(`<details class="sf-faq-item"`)
			if !r.interactive() {
				items.WriteString(` open`)
			}
			items.WriteString(`><summary>` + esc(item.Question) + `</summary><p>` + esc(item.Answer) + `</p></details>`)
		}
		inner = items.String()

	case node.BlockCustomHTML:
		safe := sanitize.HTML(b.Data.HTML)
		if strings.TrimSpace(safe) == "" {
			return ""
		}
		inner = `<div class="sf-custom">` + safe + `</div>`

	case node.BlockSpacer:
		inner = `<div class="sf-spacer" style="height: 24px"></div>`

	case node.BlockDivider:
		inner = `<hr class="sf-divider">`

	case node.BlockColumns:
		var cols strings.Builder
		for _, col := range b.Data.Columns {
			fmt.Fprintf(&cols, `<div class="sf-col" data-col="%s" style="flex-basis: %s">`,
				esc(col.ID), esc(col.Width))
			cols.WriteString(string(r.renderBlocks(col.Content)))
			if len(col.Content) == 0 && r.Mode == Preview {
				cols.WriteString(`<div class="sf-empty">Drop blocks here.</div>`)
			}
			cols.WriteString(`</div>`)
		}
		inner = `<div class="sf-cols">` + cols.String() + `</div>`

	default:
		if r.Mode == Storefront {
			return ""
		}
		inner = `<div class="sf-unknown"><span class="sf-unknown-tag">` + esc(string(b.Type)) + `</span></div>`
	}

	return template.HTML(fmt.Sprintf(`<div id="block-%s" class="sf-block sf-block-%s"%s>%s</div>`,
		esc(b.ID), esc(string(b.Type)), blockStyleAttr(b.Styles), inner))
}

// RenderPage renders the page builder document variant: no chrome, just the
// ordered blocks.
func (r *Renderer) RenderPage(page node.Page) template.HTML {
	return template.HTML(`<div class="sf-page" id="page-` + template.HTMLEscapeString(page.ID) + `">` +
		string(r.renderBlocks(page.Blocks)) + `</div>`)
}

func blockStyleAttr(s node.BlockStyles) string {
	var parts []string
	if s.Background != "" {
		parts = append(parts, "background: "+s.Background)
	}
	if s.TextAlign != "" {
		parts = append(parts, "text-align: "+s.TextAlign)
	}
	if len(parts) == 0 {
		return ""
	}
	return ` style="` + template.HTMLEscapeString(strings.Join(parts, "; ")) + `"`
}
