// Package node defines the content node model: the document tree a merchant
// assembles in the layout editor and the storefront renders for shoppers.
// Two document variants share these primitives: the section-based home
// Layout and the block-based page builder Page.
package node

// Device identifies a preview/visibility breakpoint.
type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceTablet  Device = "tablet"
	DeviceMobile  Device = "mobile"
)

// Layout is the root document for one tenant's home page. Header and footer
// are fixed chrome; only Sections are editable.
type Layout struct {
	Header   HeaderConfig `json:"header"`
	Footer   FooterConfig `json:"footer"`
	Sections []Section    `json:"sections"`
}

// HeaderConfig is non-editable chrome configuration supplied by the host
// application.
type HeaderConfig struct {
	Logo     string `json:"logo,omitempty"`
	ShowCart bool   `json:"showCart,omitempty"`
	Sticky   bool   `json:"sticky,omitempty"`
}

type FooterConfig struct {
	Copyright  string `json:"copyright,omitempty"`
	ShowSocial bool   `json:"showSocial,omitempty"`
}

// Section is a top-level content node. Order is dense and zero-based after
// every mutation; IDs are unique within a Layout and stable across edits.
type Section struct {
	ID           string       `json:"id"`
	Type         SectionType  `json:"type"`
	Order        int          `json:"order"`
	Title        string       `json:"title,omitempty"`
	Subtitle     string       `json:"subtitle,omitempty"`
	Settings     Settings     `json:"settings"`
	DataBindings DataBindings `json:"dataBindings"`
	Blocks       []Block      `json:"blocks,omitempty"`
	CustomHTML   string       `json:"customHtml,omitempty"`
	CustomCSS    string       `json:"customCss,omitempty"`
	CustomStyles CustomStyles `json:"customStyles"`
}

// Settings is layout/style configuration shared by every section type.
// Unused knobs keep their zero value for types they don't apply to.
type Settings struct {
	Columns        int         `json:"columns,omitempty"`
	Gap            int         `json:"gap,omitempty"`
	Limit          int         `json:"limit,omitempty"`
	ContainerWidth string      `json:"containerWidth,omitempty"`
	Background     string      `json:"background,omitempty"`
	Padding        string      `json:"padding,omitempty"`
	Margin         string      `json:"margin,omitempty"`
	Height         string      `json:"height,omitempty"`
	Visibility     *Visibility `json:"visibility,omitempty"`
}

// Visibility controls per-device rendering. A nil Visibility on Settings
// means visible everywhere.
type Visibility struct {
	Desktop bool `json:"desktop"`
	Tablet  bool `json:"tablet"`
	Mobile  bool `json:"mobile"`
}

// VisibleOn reports whether a section with these settings renders for the
// given device.
func (s Settings) VisibleOn(d Device) bool {
	if s.Visibility == nil {
		return true
	}
	switch d {
	case DeviceTablet:
		return s.Visibility.Tablet
	case DeviceMobile:
		return s.Visibility.Mobile
	default:
		return s.Visibility.Desktop
	}
}

// ProductSource selects which products a data-bound section shows.
type ProductSource string

const (
	SourceRecent      ProductSource = "recent"
	SourceBestSellers ProductSource = "best_sellers"
	SourceFeatured    ProductSource = "featured"
	SourceCustom      ProductSource = "custom"
)

// DataBindings declares which external data a section fetches. The core
// never writes through these; they parameterize read-only collaborator
// queries scoped by tenant.
type DataBindings struct {
	Source     ProductSource `json:"source,omitempty"`
	SortBy     string        `json:"sortBy,omitempty"`
	CategoryID string        `json:"categoryId,omitempty"`
	ProductIDs []string      `json:"productIds,omitempty"`
}

// CustomStyles carries free-form CSS applied to the section's own box. It is
// scoped to the section container before it reaches a page.
type CustomStyles struct {
	CustomCSS string `json:"customCSS,omitempty"`
}

// Block is a leaf content node used inside sections and columns, and as the
// unit of the page builder document variant.
type Block struct {
	ID     string      `json:"id"`
	Type   BlockType   `json:"type"`
	Order  int         `json:"order"`
	Data   BlockData   `json:"data"`
	Styles BlockStyles `json:"styles"`
}

// BlockData is the type-specific payload. Only the fields relevant to the
// block's type are populated.
type BlockData struct {
	Text         string        `json:"text,omitempty"`
	Level        int           `json:"level,omitempty"`
	ImageURL     string        `json:"imageUrl,omitempty"`
	ImageAlt     string        `json:"imageAlt,omitempty"`
	LinkLabel    string        `json:"linkLabel,omitempty"`
	LinkHref     string        `json:"linkHref,omitempty"`
	VideoURL     string        `json:"videoUrl,omitempty"`
	HTML         string        `json:"html,omitempty"`
	Testimonials []Testimonial `json:"testimonials,omitempty"`
	Features     []Feature     `json:"features,omitempty"`
	Stats        []Stat        `json:"stats,omitempty"`
	Items        []FAQItem     `json:"items,omitempty"`
	Columns      []Column      `json:"columns,omitempty"`
}

type BlockStyles struct {
	Background string `json:"background,omitempty"`
	TextAlign  string `json:"textAlign,omitempty"`
}

// Column holds an ordered run of blocks inside a columns block. A column may
// not itself contain another columns block; mutation operations enforce the
// depth cap.
type Column struct {
	ID      string  `json:"id"`
	Width   string  `json:"width"`
	Content []Block `json:"content"`
}

type Testimonial struct {
	Author string `json:"author"`
	Quote  string `json:"quote"`
	Role   string `json:"role,omitempty"`
}

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Page is the page-builder document variant: a flat, ordered run of blocks
// with no fixed chrome.
type Page struct {
	ID     string  `json:"id"`
	Blocks []Block `json:"blocks"`
}
