package node

import "github.com/google/uuid"

// Duplicate deep-copies the section under a fresh identifier. Nested blocks
// and columns get fresh identifiers too, so the copy is fully addressable
// independently of the original.
func (s Section) Duplicate() Section {
	out := s.Clone()
	out.ID = uuid.NewString()
	for i := range out.Blocks {
		out.Blocks[i] = out.Blocks[i].Duplicate()
	}
	return out
}

// Duplicate deep-copies the block under a fresh identifier.
func (b Block) Duplicate() Block {
	out := b.Clone()
	out.ID = uuid.NewString()
	for i := range out.Data.Columns {
		col := out.Data.Columns[i]
		col.ID = uuid.NewString()
		for j := range col.Content {
			col.Content[j] = col.Content[j].Duplicate()
		}
		out.Data.Columns[i] = col
	}
	return out
}
