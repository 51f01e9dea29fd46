package dnd

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagewright/storefront-builder/internal/editor"
	"github.com/pagewright/storefront-builder/internal/node"
)

// threeSections builds a session holding [hero, banner, faq].
func threeSections(t *testing.T) *editor.Session {
	t.Helper()
	s := editor.NewSession("acme", node.NewLayout(), logr.Discard())
	s.AddSection(node.SectionHero, nil)
	s.AddSection(node.SectionBanner, nil)
	s.AddSection(node.SectionFAQ, nil)
	return s
}

func types(doc node.Layout) []node.SectionType {
	out := make([]node.SectionType, len(doc.Sections))
	for i, s := range doc.Sections {
		out[i] = s.Type
	}
	return out
}

func TestResolve_PaletteBeforeZone(t *testing.T) {
	s := threeSections(t)
	anchor := s.Current().Sections[2] // the faq section at index 2

	doc := Resolve(s, Drop{
		Source: Source{PaletteType: node.SectionText},
		Target: Target{Position: Before, AnchorID: anchor.ID},
	})

	require.Len(t, doc.Sections, 4)
	assert.Equal(t,
		[]node.SectionType{node.SectionHero, node.SectionBanner, node.SectionText, node.SectionFAQ},
		types(doc))
	assert.Equal(t, 2, doc.Sections[2].Order)
	assert.Equal(t, 3, doc.IndexOf(anchor.ID), "the former index-2 section is now at index 3")

	// the new node is selected
	assert.Equal(t, doc.Sections[2].ID, s.SelectedID())
}

func TestResolve_PaletteAfterZone(t *testing.T) {
	s := threeSections(t)
	anchor := s.Current().Sections[0]

	doc := Resolve(s, Drop{
		Source: Source{PaletteType: node.SectionText},
		Target: Target{Position: After, AnchorID: anchor.ID},
	})

	require.Len(t, doc.Sections, 4)
	assert.Equal(t, node.SectionText, doc.Sections[1].Type)
}

func TestResolve_PaletteNoRecognizedZoneAppends(t *testing.T) {
	s := threeSections(t)

	doc := Resolve(s, Drop{
		Source: Source{PaletteType: node.SectionText},
		Target: Target{Position: Before, AnchorID: "unknown"},
	})

	require.Len(t, doc.Sections, 4)
	assert.Equal(t, node.SectionText, doc.Sections[3].Type)
}

func TestResolve_Reorder(t *testing.T) {
	s := threeSections(t)
	doc := s.Current()
	hero, faq := doc.Sections[0], doc.Sections[2]

	doc = Resolve(s, Drop{
		Source: Source{NodeID: hero.ID},
		Target: Target{Position: After, AnchorID: faq.ID},
	})

	assert.Equal(t,
		[]node.SectionType{node.SectionBanner, node.SectionFAQ, node.SectionHero},
		types(doc))
	assert.Equal(t, hero.ID, s.SelectedID(), "the moved node becomes the selected node")
}

func TestResolve_NoOps(t *testing.T) {
	s := threeSections(t)
	before := s.Current()

	tests := []struct {
		name string
		drop Drop
	}{
		{
			name: "source equals target",
			drop: Drop{
				Source: Source{NodeID: before.Sections[1].ID},
				Target: Target{Position: After, AnchorID: before.Sections[1].ID},
			},
		},
		{
			name: "reorder onto unknown anchor",
			drop: Drop{
				Source: Source{NodeID: before.Sections[0].ID},
				Target: Target{Position: After, AnchorID: "ghost"},
			},
		},
		{
			name: "unknown source node",
			drop: Drop{
				Source: Source{NodeID: "ghost"},
				Target: Target{Position: Before, AnchorID: before.Sections[0].ID},
			},
		},
		{
			name: "empty drop",
			drop: Drop{},
		},
		{
			name: "palette block outside a container",
			drop: Drop{
				Source: Source{PaletteBlock: node.BlockText},
				Target: Target{Position: Before, AnchorID: before.Sections[0].ID},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Resolve(s, tt.drop)
			assert.Equal(t, before, doc)
		})
	}
}

func TestResolve_InsideEmptyContainer(t *testing.T) {
	s := editor.NewSession("acme", node.NewLayout(), logr.Discard())
	doc := s.AddSection(node.SectionColumns, nil)
	container := doc.Sections[0]

	doc = Resolve(s, Drop{
		Source: Source{PaletteBlock: node.BlockHeading},
		Target: Target{Position: Inside, AnchorID: container.ID},
	})

	require.Len(t, doc.Sections[0].Blocks, 1)
	assert.Equal(t, node.BlockHeading, doc.Sections[0].Blocks[0].Type)

	// inside a non-empty container is a no-op
	before := s.Current()
	after := Resolve(s, Drop{
		Source: Source{PaletteBlock: node.BlockText},
		Target: Target{Position: Inside, AnchorID: container.ID},
	})
	assert.Equal(t, before, after)
}
