// Package render turns a layout document into HTML. Two dispatch tables
// share one closed section catalog: the preview table backs the authoring
// canvas (skeleton data, inert controls), the storefront table backs the
// live site (real collaborator data, real navigation).
package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pagewright/storefront-builder/internal/catalog"
	"github.com/pagewright/storefront-builder/internal/node"
	"github.com/pagewright/storefront-builder/internal/sanitize"
)

// Mode selects which dispatch table a Renderer uses.
type Mode string

const (
	Preview    Mode = "preview"
	Storefront Mode = "storefront"
)

// Renderer renders sections and whole layouts in one mode. Catalog may be
// nil; data-bound sections then render skeleton placeholders.
type Renderer struct {
	Catalog  catalog.Source
	Language language.Tag
	Log      logr.Logger
	Mode     Mode
}

type renderFunc func(r *Renderer, sec node.Section, data *sectionData) (template.HTML, error)

// Both tables carry the same keys. Static types share bodies; data-bound
// and interactive types fork on the renderer's mode inside the shared
// function, so the tables stay structurally identical and a type added to
// one without the other is caught by TestDispatchTablesAgree.
var previewRenderers = map[node.SectionType]renderFunc{
	node.SectionHero:         renderHero,
	node.SectionProducts:     renderProducts,
	node.SectionCategories:   renderCategories,
	node.SectionBrands:       renderBrands,
	node.SectionText:         renderText,
	node.SectionHeading:      renderHeading,
	node.SectionImage:        renderImage,
	node.SectionBanner:       renderBanner,
	node.SectionCTA:          renderCTA,
	node.SectionTestimonials: renderTestimonials,
	node.SectionFeatures:     renderFeatures,
	node.SectionNewsletter:   renderNewsletter,
	node.SectionStats:        renderStats,
	node.SectionFAQ:          renderFAQ,
	node.SectionSpacer:       renderSpacer,
	node.SectionDivider:      renderDivider,
	node.SectionCustomHTML:   renderCustomHTML,
	node.SectionVideo:        renderVideo,
	node.SectionColumns:      renderColumnsSection,
}

var storefrontRenderers = map[node.SectionType]renderFunc{
	node.SectionHero:         renderHero,
	node.SectionProducts:     renderProducts,
	node.SectionCategories:   renderCategories,
	node.SectionBrands:       renderBrands,
	node.SectionText:         renderText,
	node.SectionHeading:      renderHeading,
	node.SectionImage:        renderImage,
	node.SectionBanner:       renderBanner,
	node.SectionCTA:          renderCTA,
	node.SectionTestimonials: renderTestimonials,
	node.SectionFeatures:     renderFeatures,
	node.SectionNewsletter:   renderNewsletter,
	node.SectionStats:        renderStats,
	node.SectionFAQ:          renderFAQ,
	node.SectionSpacer:       renderSpacer,
	node.SectionDivider:      renderDivider,
	node.SectionCustomHTML:   renderCustomHTML,
	node.SectionVideo:        renderVideo,
	node.SectionColumns:      renderColumnsSection,
}

func (r *Renderer) dispatch() map[node.SectionType]renderFunc {
	if r.Mode == Preview {
		return previewRenderers
	}
	return storefrontRenderers
}

func (r *Renderer) interactive() bool {
	return r.Mode == Storefront
}

// RenderSection renders one section body wrapped in its container. It never
// propagates a panic or error out of the operation boundary: failures
// degrade to nothing in the storefront and to a labeled placeholder in the
// preview.
func (r *Renderer) RenderSection(ctx context.Context, sec node.Section) template.HTML {
	return r.renderWithData(sec, r.fetch(ctx, sec))
}

func (r *Renderer) renderWithData(sec node.Section, data *sectionData) (out template.HTML) {
	defer func() {
		if rec := recover(); rec != nil {
			r.Log.Error(fmt.Errorf("panic: %v", rec), "render section", "section", sec.ID, "type", sec.Type)
			out = r.degraded(sec)
		}
	}()

	if r.Mode == Storefront && hiddenEverywhere(sec.Settings) {
		return ""
	}

	fn, ok := r.dispatch()[sec.Type]
	if !ok {
		return r.degraded(sec)
	}
	if data == nil {
		data = &sectionData{}
	}

	body, err := fn(r, sec, data)
	if err != nil {
		r.Log.Error(err, "render section", "section", sec.ID, "type", sec.Type)
		return r.degraded(sec)
	}
	return r.wrap(sec, body)
}

// degraded is the failure and unknown-type shape: invisible on the live
// site, a flagged placeholder for the merchant.
func (r *Renderer) degraded(sec node.Section) template.HTML {
	if r.Mode == Storefront {
		return ""
	}
	body, err := r.execute("unknown", tmplData{Section: sec, Label: string(sec.Type)})
	if err != nil {
		return ""
	}
	return r.wrap(sec, body)
}

// RenderLayout renders the whole document. Data-bound sections fetch their
// collaborator data concurrently; a failed fetch degrades only its own
// section and the document order is preserved.
func (r *Renderer) RenderLayout(ctx context.Context, tenantID string, layout node.Layout) template.HTML {
	fetched := make([]*sectionData, len(layout.Sections))
	var wg sync.WaitGroup
	for i, sec := range layout.Sections {
		if !sec.Type.NeedsData() || r.Catalog == nil {
			continue
		}
		wg.Add(1)
		go func(i int, sec node.Section) {
			defer wg.Done()
			fetched[i] = r.fetch(WithTenant(ctx, tenantID), sec)
		}(i, sec)
	}
	wg.Wait()

	var buf strings.Builder
	for i, sec := range layout.Sections {
		buf.WriteString(string(r.renderWithData(sec, fetched[i])))
	}
	return template.HTML(buf.String())
}

// fetch resolves one section's collaborator data. Fetch errors are logged
// and reduced to empty rows so the section renders its skeleton state.
func (r *Renderer) fetch(ctx context.Context, sec node.Section) *sectionData {
	if !sec.Type.NeedsData() || r.Catalog == nil {
		return &sectionData{}
	}

	q := catalog.Query{
		TenantID:   tenantFromContext(ctx),
		Limit:      sec.Settings.Limit,
		SortBy:     sec.DataBindings.SortBy,
		Source:     sec.DataBindings.Source,
		CategoryID: sec.DataBindings.CategoryID,
		ProductIDs: sec.DataBindings.ProductIDs,
	}

	data := &sectionData{}
	var err error
	switch sec.Type {
	case node.SectionProducts:
		data.Products, err = r.Catalog.Products(ctx, q)
	case node.SectionCategories:
		data.Categories, err = r.Catalog.Categories(ctx, q)
	case node.SectionBrands:
		data.Brands, err = r.Catalog.Brands(ctx, q)
	}
	if err != nil {
		r.Log.Error(err, "fetch section data", "section", sec.ID, "type", sec.Type)
	}
	return data
}

// wrap puts the body in the section container carrying the node identity,
// settings-driven inline style and the scoped custom stylesheet.
func (r *Renderer) wrap(sec node.Section, body template.HTML) template.HTML {
	containerID := "section-" + sec.ID

	var buf strings.Builder

	css := strings.TrimSpace(sec.CustomCSS)
	if extra := strings.TrimSpace(sec.CustomStyles.CustomCSS); extra != "" {
		if css != "" {
			css += "\n"
		}
		css += extra
	}
	if css != "" {
		if scoped := sanitize.ScopeCSS(css, containerID); scoped != "" {
			buf.WriteString("<style>")
			buf.WriteString(scoped)
			buf.WriteString("</style>")
		}
	}

	fmt.Fprintf(&buf, `<section id="%s" class="sf-section sf-%s%s"`,
		template.HTMLEscapeString(containerID),
		template.HTMLEscapeString(string(sec.Type)),
		visibilityClasses(sec.Settings))

	if style := inlineStyle(sec.Settings); style != "" {
		fmt.Fprintf(&buf, ` style="%s"`, template.HTMLEscapeString(style))
	}
	buf.WriteString(">")
	buf.WriteString(string(body))
	buf.WriteString("</section>")
	return template.HTML(buf.String())
}

// hiddenEverywhere reports a visibility set with no device left. Such a
// section never reaches the storefront page at all; per-device hiding is
// left to the sf-hide-* classes.
func hiddenEverywhere(s node.Settings) bool {
	v := s.Visibility
	return v != nil && !v.Desktop && !v.Tablet && !v.Mobile
}

// The sf-hide-* classes are media-query hooks: the host theme's stylesheet
// maps each to a display rule for its breakpoint.
func visibilityClasses(s node.Settings) string {
	if s.Visibility == nil {
		return ""
	}
	var classes []string
	if !s.Visibility.Desktop {
		classes = append(classes, "sf-hide-desktop")
	}
	if !s.Visibility.Tablet {
		classes = append(classes, "sf-hide-tablet")
	}
	if !s.Visibility.Mobile {
		classes = append(classes, "sf-hide-mobile")
	}
	if len(classes) == 0 {
		return ""
	}
	return " " + strings.Join(classes, " ")
}

func inlineStyle(s node.Settings) string {
	var parts []string
	if s.Background != "" {
		parts = append(parts, "background: "+s.Background)
	}
	if s.Padding != "" {
		parts = append(parts, "padding: "+s.Padding)
	}
	if s.Margin != "" {
		parts = append(parts, "margin: "+s.Margin)
	}
	if s.ContainerWidth != "" {
		parts = append(parts, "max-width: "+s.ContainerWidth)
	}
	return strings.Join(parts, "; ")
}

func (r *Renderer) execute(name string, data tmplData) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// priceLabel formats minor currency units in the renderer's language.
func (r *Renderer) priceLabel(p catalog.Product) string {
	lang := r.Language
	if lang == language.Und {
		lang = language.English
	}
	cur := p.Currency
	if cur == "" {
		cur = "USD"
	}
	return message.NewPrinter(lang).Sprintf("%s %.2f", cur, float64(p.Price)/100)
}

type tenantKey struct{}

// WithTenant scopes collaborator queries issued during rendering.
func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantKey{}, tenantID)
}

func tenantFromContext(ctx context.Context) string {
	v, _ := ctx.Value(tenantKey{}).(string)
	return v
}
