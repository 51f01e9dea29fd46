package editor

import (
	"dario.cat/mergo"

	"github.com/pagewright/storefront-builder/internal/node"
)

// BlockTarget addresses a run of blocks one level down from sections: either
// a section's own blocks, or one column's content inside a columns block.
type BlockTarget struct {
	SectionID      string `json:"sectionId"`
	ColumnsBlockID string `json:"columnsBlockId,omitempty"`
	ColumnID       string `json:"columnId,omitempty"`
}

// BlockPatch is a partial update of a block. Data and Styles merge at the
// sub-object level.
type BlockPatch struct {
	Data   *node.BlockData   `json:"data,omitempty"`
	Styles *node.BlockStyles `json:"styles,omitempty"`
}

// resolve returns the addressed block run, or nil when any id in the path is
// unknown. The pointer is into the cloned working document.
func (t BlockTarget) resolve(doc *node.Layout) *[]node.Block {
	i := doc.IndexOf(t.SectionID)
	if i < 0 {
		return nil
	}
	sec := &doc.Sections[i]

	if t.ColumnsBlockID == "" {
		return &sec.Blocks
	}

	j := node.IndexOfBlock(sec.Blocks, t.ColumnsBlockID)
	if j < 0 || sec.Blocks[j].Type != node.BlockColumns {
		return nil
	}
	cols := sec.Blocks[j].Data.Columns
	for k := range cols {
		if cols[k].ID == t.ColumnID {
			return &cols[k].Content
		}
	}
	return nil
}

func (t BlockTarget) insideColumn() bool {
	return t.ColumnsBlockID != ""
}

// AddBlock inserts a default block of the given type at atIndex (nil
// appends). A columns block may not be added inside a column: nesting is
// capped at one level.
func (s *Session) AddBlock(target BlockTarget, t node.BlockType, atIndex *int) node.Layout {
	if !t.Valid() {
		s.log.V(1).Info("add block: unknown type", "type", t)
		return s.Current()
	}
	if t == node.BlockColumns && target.insideColumn() {
		s.log.V(1).Info("add block: columns inside a column rejected", "section", target.SectionID)
		return s.Current()
	}

	var insertedID string
	out := s.apply(func(doc *node.Layout) bool {
		blocks := target.resolve(doc)
		if blocks == nil {
			return false
		}

		b := node.NewBlock(t)
		insertedID = b.ID

		i := len(*blocks)
		if atIndex != nil && *atIndex >= 0 && *atIndex <= len(*blocks) {
			i = *atIndex
		}

		*blocks = append(*blocks, node.Block{})
		copy((*blocks)[i+1:], (*blocks)[i:])
		(*blocks)[i] = b
		node.RenumberBlocks(*blocks)
		return true
	})

	if insertedID != "" {
		s.Select(insertedID)
	}
	return out
}

// DeleteBlock removes the block and renumbers the remainder.
func (s *Session) DeleteBlock(target BlockTarget, blockID string) node.Layout {
	out := s.apply(func(doc *node.Layout) bool {
		blocks := target.resolve(doc)
		if blocks == nil {
			return false
		}
		i := node.IndexOfBlock(*blocks, blockID)
		if i < 0 {
			return false
		}
		*blocks = append((*blocks)[:i], (*blocks)[i+1:]...)
		node.RenumberBlocks(*blocks)
		return true
	})

	if s.SelectedID() == blockID {
		s.Select("")
	}
	return out
}

// DuplicateBlock deep-copies the block under a new identifier, inserted
// directly after the original.
func (s *Session) DuplicateBlock(target BlockTarget, blockID string) node.Layout {
	var copyID string
	out := s.apply(func(doc *node.Layout) bool {
		blocks := target.resolve(doc)
		if blocks == nil {
			return false
		}
		i := node.IndexOfBlock(*blocks, blockID)
		if i < 0 {
			return false
		}
		dup := (*blocks)[i].Duplicate()
		copyID = dup.ID
		*blocks = append(*blocks, node.Block{})
		copy((*blocks)[i+2:], (*blocks)[i+1:])
		(*blocks)[i+1] = dup
		node.RenumberBlocks(*blocks)
		return true
	})

	if copyID != "" {
		s.Select(copyID)
	}
	return out
}

// UpdateBlock merges the patch into the block.
func (s *Session) UpdateBlock(target BlockTarget, blockID string, patch BlockPatch) node.Layout {
	return s.apply(func(doc *node.Layout) bool {
		blocks := target.resolve(doc)
		if blocks == nil {
			return false
		}
		i := node.IndexOfBlock(*blocks, blockID)
		if i < 0 {
			return false
		}
		b := &(*blocks)[i]

		if patch.Data != nil {
			if err := mergo.Merge(&b.Data, *patch.Data, mergo.WithOverride); err != nil {
				s.log.Error(err, "merge block data", "block", blockID)
				return false
			}
		}
		if patch.Styles != nil {
			if err := mergo.Merge(&b.Styles, *patch.Styles, mergo.WithOverride); err != nil {
				s.log.Error(err, "merge block styles", "block", blockID)
				return false
			}
		}
		return true
	})
}

// ReorderBlocks moves the block at fromIndex to toIndex within one run.
func (s *Session) ReorderBlocks(target BlockTarget, fromIndex, toIndex int) node.Layout {
	return s.apply(func(doc *node.Layout) bool {
		blocks := target.resolve(doc)
		if blocks == nil {
			return false
		}
		n := len(*blocks)
		if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n || fromIndex == toIndex {
			return false
		}
		moved := (*blocks)[fromIndex]
		*blocks = append((*blocks)[:fromIndex], (*blocks)[fromIndex+1:]...)
		*blocks = append(*blocks, node.Block{})
		copy((*blocks)[toIndex+1:], (*blocks)[toIndex:])
		(*blocks)[toIndex] = moved
		node.RenumberBlocks(*blocks)
		return true
	})
}
