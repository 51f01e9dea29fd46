// Package canvas builds the authoring surface: the preview-rendered document
// decorated with selection, drop zones, per-node toolbars and the device
// frame. The canvas is regenerated from session state after every mutation;
// it never holds state of its own.
package canvas

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/go-logr/logr"

	"github.com/pagewright/storefront-builder/internal/editor"
	"github.com/pagewright/storefront-builder/internal/node"
	"github.com/pagewright/storefront-builder/internal/render"
)

// Device frame widths. The desktop frame fills its container; tablet and
// mobile are fixed so the merchant sees real breakpoint behavior.
var frameWidths = map[node.Device]string{
	node.DeviceDesktop: "100%",
	node.DeviceTablet:  "768px",
	node.DeviceMobile:  "390px",
}

// Canvas renders editing surfaces. Renderer must be in preview mode; the
// canvas embeds its output inside each node wrapper.
type Canvas struct {
	Log      logr.Logger
	Renderer *render.Renderer
}

// Render produces the full canvas for one session: chrome placeholders, the
// section run with drop zones between every pair of nodes, and the trailing
// zone that accepts drops onto an empty or past-the-end position.
func (c *Canvas) Render(ctx context.Context, s *editor.Session) template.HTML {
	layout := s.Current()
	device := s.Device()
	selected := s.SelectedID()

	var buf strings.Builder

	fmt.Fprintf(&buf, `<div class="canvas canvas-%s" style="width: %s" data-device="%s">`,
		device, frameWidths[device], device)

	c.writeHeader(&buf, layout.Header)

	buf.WriteString(`<div class="canvas-sections">`)
	if len(layout.Sections) == 0 {
		buf.WriteString(`<div class="drop-zone drop-zone-empty" data-pos="inside">` +
			`<p>Drag a section from the palette to start building.</p></div>`)
	}
	for _, sec := range layout.Sections {
		c.writeDropZone(&buf, "before", sec.ID)
		c.writeNode(ctx, &buf, s, sec, device, selected)
	}
	if n := len(layout.Sections); n > 0 {
		c.writeDropZone(&buf, "after", layout.Sections[n-1].ID)
	}
	buf.WriteString(`</div>`)

	c.writeFooter(&buf, layout.Footer)

	buf.WriteString(`</div>`)
	return template.HTML(buf.String())
}

// writeNode wraps one section's preview output with the editing affordances.
// Collapsed nodes keep their identity and toolbar but swap the body for a
// one-line summary, so long documents stay navigable.
func (c *Canvas) writeNode(ctx context.Context, buf *strings.Builder, s *editor.Session, sec node.Section, device node.Device, selected string) {
	classes := []string{"canvas-node"}
	if sec.ID == selected {
		classes = append(classes, "is-selected")
	}
	if s.Collapsed(sec.ID) {
		classes = append(classes, "is-collapsed")
	}
	if !sec.Settings.VisibleOn(device) {
		classes = append(classes, "is-device-hidden")
	}

	fmt.Fprintf(buf, `<div class="%s" data-node="%s" data-type="%s">`,
		strings.Join(classes, " "),
		template.HTMLEscapeString(sec.ID),
		template.HTMLEscapeString(string(sec.Type)))

	c.writeToolbar(buf, sec, s.Collapsed(sec.ID))

	if s.Collapsed(sec.ID) {
		fmt.Fprintf(buf, `<div class="canvas-node-summary">%s</div>`, template.HTMLEscapeString(nodeLabel(sec)))
	} else {
		buf.WriteString(`<div class="canvas-node-body">`)
		buf.WriteString(string(c.Renderer.RenderSection(ctx, sec)))
		buf.WriteString(`</div>`)
	}

	buf.WriteString(`</div>`)
}

// writeToolbar emits the per-node controls. Delete requires a confirm step
// on the client; the data attribute carries the prompt so the surface stays
// declarative.
func (c *Canvas) writeToolbar(buf *strings.Builder, sec node.Section, collapsed bool) {
	id := template.HTMLEscapeString(sec.ID)
	collapseLabel := "Collapse"
	if collapsed {
		collapseLabel = "Expand"
	}

	fmt.Fprintf(buf, `<div class="canvas-toolbar">`+
		`<span class="canvas-handle" draggable="true" data-drag="%s" title="Drag to reorder">⠿</span>`+
		`<span class="canvas-label">%s</span>`+
		`<button type="button" data-action="collapse" data-node="%s">%s</button>`+
		`<button type="button" data-action="duplicate" data-node="%s">Duplicate</button>`+
		`<button type="button" data-action="delete" data-node="%s" data-confirm="Delete this section? This can be undone.">Delete</button>`+
		`</div>`,
		id, template.HTMLEscapeString(nodeLabel(sec)), id, collapseLabel, id, id)
}

func (c *Canvas) writeDropZone(buf *strings.Builder, pos, anchorID string) {
	fmt.Fprintf(buf, `<div class="drop-zone" data-pos="%s" data-anchor="%s"></div>`,
		pos, template.HTMLEscapeString(anchorID))
}

// Header and footer are host chrome: visible for context, not editable, no
// toolbar and no drop zones around them.
func (c *Canvas) writeHeader(buf *strings.Builder, h node.HeaderConfig) {
	buf.WriteString(`<div class="canvas-chrome canvas-header" aria-hidden="true">`)
	if h.Logo != "" {
		fmt.Fprintf(buf, `<img class="canvas-logo" src="%s" alt="">`, template.HTMLEscapeString(h.Logo))
	} else {
		buf.WriteString(`<span class="canvas-logo-placeholder">Logo</span>`)
	}
	if h.ShowCart {
		buf.WriteString(`<span class="canvas-cart">Cart</span>`)
	}
	buf.WriteString(`</div>`)
}

func (c *Canvas) writeFooter(buf *strings.Builder, f node.FooterConfig) {
	buf.WriteString(`<div class="canvas-chrome canvas-footer" aria-hidden="true">`)
	if f.Copyright != "" {
		fmt.Fprintf(buf, `<span>%s</span>`, template.HTMLEscapeString(f.Copyright))
	} else {
		buf.WriteString(`<span>Footer</span>`)
	}
	buf.WriteString(`</div>`)
}

// Palette lists the closed section catalog in display order for the sidebar.
func Palette() []PaletteEntry {
	types := node.SectionTypes()
	out := make([]PaletteEntry, 0, len(types))
	for _, t := range types {
		out = append(out, PaletteEntry{Type: t, Label: paletteLabel(t)})
	}
	return out
}

type PaletteEntry struct {
	Type  node.SectionType `json:"type"`
	Label string           `json:"label"`
}

func paletteLabel(t node.SectionType) string {
	switch t {
	case node.SectionCTA:
		return "Call to action"
	case node.SectionFAQ:
		return "FAQ"
	case node.SectionCustomHTML:
		return "Custom HTML"
	}
	label := strings.ReplaceAll(string(t), "_", " ")
	return strings.ToUpper(label[:1]) + label[1:]
}

func nodeLabel(sec node.Section) string {
	if sec.Title != "" {
		return sec.Title
	}
	return paletteLabel(sec.Type)
}
