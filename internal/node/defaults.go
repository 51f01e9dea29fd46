package node

import "github.com/google/uuid"

const (
	MinColumns = 1
	MaxColumns = 12
)

// ClampColumns forces a column count into the documented [1,12] range.
func ClampColumns(n int) int {
	if n < MinColumns {
		return MinColumns
	}
	if n > MaxColumns {
		return MaxColumns
	}
	return n
}

// NewLayout returns the empty document a tenant starts from on first visit
// to the editor.
func NewLayout() Layout {
	return Layout{
		Header:   HeaderConfig{ShowCart: true, Sticky: true},
		Footer:   FooterConfig{ShowSocial: true},
		Sections: []Section{},
	}
}

// NewSection constructs a section of the given type with sensible defaults.
// The result satisfies every section invariant: fresh unique id, order 0
// (the caller renumbers on insert), settings within documented ranges.
func NewSection(t SectionType) Section {
	s := Section{
		ID:       uuid.NewString(),
		Type:     t,
		Settings: Settings{Padding: "48px 0"},
	}

	switch t {
	case SectionHero:
		s.Title = "Welcome to our store"
		s.Subtitle = "Discover our latest arrivals"
		s.Settings.Height = "480px"
		s.Settings.Background = "#111827"
	case SectionProducts:
		s.Title = "Featured products"
		s.Settings.Columns = 4
		s.Settings.Gap = 24
		s.Settings.Limit = 8
		s.DataBindings = DataBindings{Source: SourceFeatured, SortBy: "created_at"}
	case SectionCategories:
		s.Title = "Shop by category"
		s.Settings.Columns = 4
		s.Settings.Gap = 16
		s.Settings.Limit = 8
		s.DataBindings = DataBindings{SortBy: "name"}
	case SectionBrands:
		s.Title = "Our brands"
		s.Settings.Columns = 6
		s.Settings.Gap = 16
		s.Settings.Limit = 12
		s.DataBindings = DataBindings{SortBy: "name"}
	case SectionHeading:
		s.Title = "Heading"
	case SectionText:
		s.Title = ""
		s.Subtitle = ""
	case SectionBanner:
		s.Title = "Season sale"
		s.Subtitle = "Up to 50% off selected items"
		s.Settings.Background = "#b91c1c"
	case SectionCTA:
		s.Title = "Ready to get started?"
		s.Subtitle = "Join thousands of happy customers"
	case SectionTestimonials:
		s.Title = "What our customers say"
		s.Settings.Columns = 3
		s.Settings.Gap = 24
	case SectionFeatures:
		s.Title = "Why shop with us"
		s.Settings.Columns = 3
		s.Settings.Gap = 24
	case SectionNewsletter:
		s.Title = "Stay in the loop"
		s.Subtitle = "Subscribe for offers and new arrivals"
	case SectionStats:
		s.Settings.Columns = 4
	case SectionFAQ:
		s.Title = "Frequently asked questions"
	case SectionSpacer:
		s.Settings.Height = "48px"
		s.Settings.Padding = ""
	case SectionDivider:
		s.Settings.Padding = "16px 0"
	case SectionColumns:
		s.Settings.Columns = 2
		s.Settings.Gap = 24
	}

	if s.Settings.Columns != 0 {
		s.Settings.Columns = ClampColumns(s.Settings.Columns)
	}

	return s
}

// NewBlock constructs a block of the given type with sensible defaults.
func NewBlock(t BlockType) Block {
	b := Block{
		ID:   uuid.NewString(),
		Type: t,
	}

	switch t {
	case BlockHeading:
		b.Data.Text = "Heading"
		b.Data.Level = 2
	case BlockText:
		b.Data.Text = "Write something here."
	case BlockButton:
		b.Data.LinkLabel = "Shop now"
		b.Data.LinkHref = "/"
	case BlockVideo:
		b.Data.VideoURL = ""
	case BlockSpacer:
		b.Styles = BlockStyles{}
	case BlockColumns:
		b.Data.Columns = []Column{NewColumn("50%"), NewColumn("50%")}
	}

	return b
}

// NewColumn constructs an empty column of the given CSS width.
func NewColumn(width string) Column {
	return Column{
		ID:      uuid.NewString(),
		Width:   width,
		Content: []Block{},
	}
}

// NewPage returns an empty page builder document.
func NewPage() Page {
	return Page{
		ID:     uuid.NewString(),
		Blocks: []Block{},
	}
}
