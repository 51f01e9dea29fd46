// Package dnd maps drag-and-drop gestures to mutation operations. It models
// the resolution protocol only: source descriptor plus target descriptor in,
// one mutation out. The pointer/DOM event plumbing lives in the editor UI;
// keeping it out of this package makes the resolution rules testable
// headlessly.
package dnd

import (
	"github.com/pagewright/storefront-builder/internal/editor"
	"github.com/pagewright/storefront-builder/internal/node"
)

// Position qualifies a drop zone relative to its anchor node.
type Position string

const (
	Before Position = "before"
	After  Position = "after"
	Inside Position = "inside"
)

// Source describes what is being dragged: a palette entry carrying only a
// type tag, or an existing node's handle. Exactly one of the two is set.
type Source struct {
	PaletteType  node.SectionType `json:"paletteType,omitempty"`
	PaletteBlock node.BlockType   `json:"paletteBlock,omitempty"`
	NodeID       string           `json:"nodeId,omitempty"`
}

// Target is the drop zone the gesture ended on. Drop zones are transient:
// they exist only while a drag is active and are never persisted.
type Target struct {
	Position Position `json:"position"`
	AnchorID string   `json:"anchorId"`
}

// Drop is a completed gesture. A cancelled drag never produces a Drop, so
// the document is untouched until a valid drop resolves.
type Drop struct {
	Source Source `json:"source"`
	Target Target `json:"target"`
}

// Resolve turns a drop into exactly one mutation on the session and returns
// the resulting snapshot. Unrecognized combinations are a no-op. The
// inserted or moved node becomes the selected node (the mutation operations
// handle selection).
func Resolve(s *editor.Session, drop Drop) node.Layout {
	doc := s.Current()

	switch {
	case drop.Source.PaletteType != "":
		return resolvePalette(s, doc, drop)
	case drop.Source.PaletteBlock != "":
		return resolvePaletteBlock(s, doc, drop)
	case drop.Source.NodeID != "":
		return resolveReorder(s, doc, drop)
	}

	return doc
}

func resolvePalette(s *editor.Session, doc node.Layout, drop Drop) node.Layout {
	anchor := doc.IndexOf(drop.Target.AnchorID)

	switch drop.Target.Position {
	case Before:
		if anchor >= 0 {
			i := anchor
			return s.AddSection(drop.Source.PaletteType, &i)
		}
	case After:
		if anchor >= 0 {
			i := anchor + 1
			return s.AddSection(drop.Source.PaletteType, &i)
		}
	}

	// no recognized drop zone: append to the end
	return s.AddSection(drop.Source.PaletteType, nil)
}

// resolvePaletteBlock drops a palette block inside an empty container
// section. Inside is only valid for an empty container; anything else
// appends nothing.
func resolvePaletteBlock(s *editor.Session, doc node.Layout, drop Drop) node.Layout {
	if drop.Target.Position != Inside {
		return doc
	}
	sec, ok := doc.Section(drop.Target.AnchorID)
	if !ok || sec.Type != node.SectionColumns || len(sec.Blocks) > 0 {
		return doc
	}
	return s.AddBlock(editor.BlockTarget{SectionID: sec.ID}, drop.Source.PaletteBlock, nil)
}

func resolveReorder(s *editor.Session, doc node.Layout, drop Drop) node.Layout {
	if drop.Source.NodeID == drop.Target.AnchorID {
		return doc
	}

	from := doc.IndexOf(drop.Source.NodeID)
	to := doc.IndexOf(drop.Target.AnchorID)
	if from < 0 || to < 0 {
		return doc
	}

	out := s.ReorderSections(from, to)
	s.Select(drop.Source.NodeID)
	return out
}
