package canvas

import (
	"context"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagewright/storefront-builder/internal/editor"
	"github.com/pagewright/storefront-builder/internal/node"
	"github.com/pagewright/storefront-builder/internal/render"
)

func newCanvas() *Canvas {
	return &Canvas{
		Log:      logr.Discard(),
		Renderer: &render.Renderer{Log: logr.Discard(), Mode: render.Preview},
	}
}

func newSession(types ...node.SectionType) *editor.Session {
	layout := node.NewLayout()
	for _, t := range types {
		layout.Sections = append(layout.Sections, node.NewSection(t))
	}
	return editor.NewSession("acme", layout, logr.Discard())
}

func TestRender_EmptyCanvas(t *testing.T) {
	out := string(newCanvas().Render(context.Background(), newSession()))

	assert.Contains(t, out, "drop-zone-empty")
	assert.Contains(t, out, "canvas-header")
	assert.Contains(t, out, "canvas-footer")
	assert.NotContains(t, out, "canvas-node")
}

func TestRender_DropZonesAroundEveryNode(t *testing.T) {
	s := newSession(node.SectionHero, node.SectionText, node.SectionDivider)
	out := string(newCanvas().Render(context.Background(), s))

	// one before-zone per section plus one trailing after-zone
	assert.Equal(t, 3, strings.Count(out, `data-pos="before"`))
	assert.Equal(t, 1, strings.Count(out, `data-pos="after"`))
	assert.NotContains(t, out, "drop-zone-empty")

	last := s.Current().Sections[2].ID
	assert.Contains(t, out, `data-pos="after" data-anchor="`+last+`"`)
}

func TestRender_SelectionAndToolbar(t *testing.T) {
	s := newSession(node.SectionHero, node.SectionText)
	target := s.Current().Sections[1].ID
	s.Select(target)

	out := string(newCanvas().Render(context.Background(), s))

	assert.Equal(t, 1, strings.Count(out, "is-selected"))
	assert.Contains(t, out, `class="canvas-node is-selected" data-node="`+target+`"`)
	assert.Equal(t, 2, strings.Count(out, `data-action="duplicate"`))
	assert.Contains(t, out, `data-confirm="Delete this section? This can be undone."`)
}

func TestRender_CollapsedNodeSkipsBody(t *testing.T) {
	s := newSession(node.SectionHero)
	id := s.Current().Sections[0].ID
	s.ToggleCollapsed(id)

	out := string(newCanvas().Render(context.Background(), s))

	assert.Contains(t, out, "is-collapsed")
	assert.Contains(t, out, "canvas-node-summary")
	assert.NotContains(t, out, "canvas-node-body")
	assert.NotContains(t, out, "sf-hero")
	assert.Contains(t, out, ">Expand<")
}

func TestRender_DeviceFrames(t *testing.T) {
	s := newSession(node.SectionHero)

	tests := []struct {
		device node.Device
		width  string
	}{
		{node.DeviceDesktop, "100%"},
		{node.DeviceTablet, "768px"},
		{node.DeviceMobile, "390px"},
	}
	for _, tt := range tests {
		s.SetDevice(tt.device)
		out := string(newCanvas().Render(context.Background(), s))
		assert.Contains(t, out, `canvas-`+string(tt.device))
		assert.Contains(t, out, `width: `+tt.width)
	}
}

func TestRender_DeviceHiddenMarker(t *testing.T) {
	s := newSession(node.SectionHero)
	id := s.Current().Sections[0].ID
	s.UpdateSection(id, editor.SectionPatch{
		Settings: &node.Settings{Visibility: &node.Visibility{Desktop: true, Tablet: true, Mobile: false}},
	})
	s.SetDevice(node.DeviceMobile)

	out := string(newCanvas().Render(context.Background(), s))
	assert.Contains(t, out, "is-device-hidden")

	s.SetDevice(node.DeviceDesktop)
	out = string(newCanvas().Render(context.Background(), s))
	assert.NotContains(t, out, "is-device-hidden")
}

func TestPalette(t *testing.T) {
	entries := Palette()
	require.Len(t, entries, len(node.SectionTypes()))

	byType := map[node.SectionType]string{}
	for _, e := range entries {
		byType[e.Type] = e.Label
	}
	assert.Equal(t, "Hero", byType[node.SectionHero])
	assert.Equal(t, "Call to action", byType[node.SectionCTA])
	assert.Equal(t, "Custom HTML", byType[node.SectionCustomHTML])
	assert.Equal(t, "FAQ", byType[node.SectionFAQ])
}
