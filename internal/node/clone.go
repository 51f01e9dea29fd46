package node

// Clone returns a deep copy of the layout. Mutation operations clone before
// touching anything so prior history snapshots never alias mutable state.
func (l Layout) Clone() Layout {
	out := l
	out.Sections = make([]Section, len(l.Sections))
	for i, s := range l.Sections {
		out.Sections[i] = s.Clone()
	}
	return out
}

// Clone returns a deep copy of the section, keeping the same identifier.
func (s Section) Clone() Section {
	out := s
	if s.Settings.Visibility != nil {
		v := *s.Settings.Visibility
		out.Settings.Visibility = &v
	}
	out.DataBindings.ProductIDs = append([]string(nil), s.DataBindings.ProductIDs...)
	if s.Blocks != nil {
		out.Blocks = make([]Block, len(s.Blocks))
		for i, b := range s.Blocks {
			out.Blocks[i] = b.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the block, keeping the same identifier.
func (b Block) Clone() Block {
	out := b
	out.Data.Testimonials = append([]Testimonial(nil), b.Data.Testimonials...)
	out.Data.Features = append([]Feature(nil), b.Data.Features...)
	out.Data.Stats = append([]Stat(nil), b.Data.Stats...)
	out.Data.Items = append([]FAQItem(nil), b.Data.Items...)
	if b.Data.Columns != nil {
		out.Data.Columns = make([]Column, len(b.Data.Columns))
		for i, c := range b.Data.Columns {
			out.Data.Columns[i] = c.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the column, keeping the same identifier.
func (c Column) Clone() Column {
	out := c
	out.Content = make([]Block, len(c.Content))
	for i, b := range c.Content {
		out.Content[i] = b.Clone()
	}
	return out
}

// Clone returns a deep copy of the page.
func (p Page) Clone() Page {
	out := p
	out.Blocks = make([]Block, len(p.Blocks))
	for i, b := range p.Blocks {
		out.Blocks[i] = b.Clone()
	}
	return out
}

// Renumber assigns dense zero-based order values matching slice position.
// Every mutation ends with a renumber pass so order never has gaps or
// duplicates.
func Renumber(sections []Section) {
	for i := range sections {
		sections[i].Order = i
	}
}

// RenumberBlocks is the block-level renumbering pass.
func RenumberBlocks(blocks []Block) {
	for i := range blocks {
		blocks[i].Order = i
	}
}

// IndexOf returns the position of the section with the given id, or -1.
func (l Layout) IndexOf(id string) int {
	for i, s := range l.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Section returns the section with the given id.
func (l Layout) Section(id string) (Section, bool) {
	if i := l.IndexOf(id); i >= 0 {
		return l.Sections[i], true
	}
	return Section{}, false
}

// IndexOfBlock returns the position of the block with the given id, or -1.
func IndexOfBlock(blocks []Block, id string) int {
	for i, b := range blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}
