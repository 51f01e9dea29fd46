package editor

import (
	"dario.cat/mergo"

	"github.com/pagewright/storefront-builder/internal/node"
)

// SectionPatch is a partial update of a section's top-level fields. Nil
// pointers leave the field alone. Settings and DataBindings merge at the
// sub-object level so unrelated settings are preserved.
type SectionPatch struct {
	Title        *string            `json:"title,omitempty"`
	Subtitle     *string            `json:"subtitle,omitempty"`
	Settings     *node.Settings     `json:"settings,omitempty"`
	DataBindings *node.DataBindings `json:"dataBindings,omitempty"`
	CustomHTML   *string            `json:"customHtml,omitempty"`
	CustomCSS    *string            `json:"customCss,omitempty"`
	CustomStyles *node.CustomStyles `json:"customStyles,omitempty"`
}

// AddSection inserts a newly-constructed default section at atIndex. A nil
// or out-of-range index appends at the end. Unknown types are a no-op.
func (s *Session) AddSection(t node.SectionType, atIndex *int) node.Layout {
	if !t.Valid() {
		s.log.V(1).Info("add section: unknown type", "type", t)
		return s.Current()
	}

	var insertedID string
	out := s.apply(func(doc *node.Layout) bool {
		sec := node.NewSection(t)
		insertedID = sec.ID

		i := len(doc.Sections)
		if atIndex != nil && *atIndex >= 0 && *atIndex <= len(doc.Sections) {
			i = *atIndex
		}

		doc.Sections = append(doc.Sections, node.Section{})
		copy(doc.Sections[i+1:], doc.Sections[i:])
		doc.Sections[i] = sec
		return true
	})

	s.Select(insertedID)
	return out
}

// DeleteSection removes the section and renumbers the remainder. Missing id
// is a no-op.
func (s *Session) DeleteSection(id string) node.Layout {
	out := s.apply(func(doc *node.Layout) bool {
		i := doc.IndexOf(id)
		if i < 0 {
			return false
		}
		doc.Sections = append(doc.Sections[:i], doc.Sections[i+1:]...)
		return true
	})

	if s.SelectedID() == id {
		s.Select("")
	}
	return out
}

// DuplicateSection deep-copies the section under a new identifier and
// inserts the copy directly after the original.
func (s *Session) DuplicateSection(id string) node.Layout {
	var copyID string
	out := s.apply(func(doc *node.Layout) bool {
		i := doc.IndexOf(id)
		if i < 0 {
			return false
		}
		dup := doc.Sections[i].Duplicate()
		copyID = dup.ID
		doc.Sections = append(doc.Sections, node.Section{})
		copy(doc.Sections[i+2:], doc.Sections[i+1:])
		doc.Sections[i+1] = dup
		return true
	})

	if copyID != "" {
		s.Select(copyID)
	}
	return out
}

// UpdateSection shallow-merges the patch into the section's top-level
// fields. Missing id is a no-op.
func (s *Session) UpdateSection(id string, patch SectionPatch) node.Layout {
	return s.apply(func(doc *node.Layout) bool {
		i := doc.IndexOf(id)
		if i < 0 {
			return false
		}
		sec := &doc.Sections[i]

		if patch.Title != nil {
			sec.Title = *patch.Title
		}
		if patch.Subtitle != nil {
			sec.Subtitle = *patch.Subtitle
		}
		if patch.CustomHTML != nil {
			sec.CustomHTML = *patch.CustomHTML
		}
		if patch.CustomCSS != nil {
			sec.CustomCSS = *patch.CustomCSS
		}
		if patch.CustomStyles != nil {
			sec.CustomStyles = *patch.CustomStyles
		}
		if patch.Settings != nil {
			patched := *patch.Settings
			vis := patched.Visibility
			patched.Visibility = nil
			if err := mergo.Merge(&sec.Settings, patched, mergo.WithOverride); err != nil {
				s.log.Error(err, "merge settings", "section", id)
				return false
			}
			// mergo cannot override with zero values, so the visibility
			// pointer is assigned wholesale: a patch carrying it replaces
			// the whole per-device set, false flags included
			if vis != nil {
				v := *vis
				sec.Settings.Visibility = &v
			}
			if sec.Settings.Columns != 0 {
				sec.Settings.Columns = node.ClampColumns(sec.Settings.Columns)
			}
		}
		if patch.DataBindings != nil {
			if err := mergo.Merge(&sec.DataBindings, *patch.DataBindings, mergo.WithOverride); err != nil {
				s.log.Error(err, "merge data bindings", "section", id)
				return false
			}
		}
		return true
	})
}

// ReorderSections moves the section at fromIndex to toIndex. Out-of-range
// indexes are a no-op.
func (s *Session) ReorderSections(fromIndex, toIndex int) node.Layout {
	return s.apply(func(doc *node.Layout) bool {
		n := len(doc.Sections)
		if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n || fromIndex == toIndex {
			return false
		}
		moved := doc.Sections[fromIndex]
		doc.Sections = append(doc.Sections[:fromIndex], doc.Sections[fromIndex+1:]...)

		doc.Sections = append(doc.Sections, node.Section{})
		copy(doc.Sections[toIndex+1:], doc.Sections[toIndex:])
		doc.Sections[toIndex] = moved
		return true
	})
}
