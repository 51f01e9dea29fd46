package node

// SectionType tags a section with its renderer. The catalog is closed: the
// palette, the mutation layer and both dispatch tables share this set.
type SectionType string

const (
	SectionHero         SectionType = "hero"
	SectionProducts     SectionType = "products"
	SectionCategories   SectionType = "categories"
	SectionBrands       SectionType = "brands"
	SectionText         SectionType = "text"
	SectionHeading      SectionType = "heading"
	SectionImage        SectionType = "image"
	SectionBanner       SectionType = "banner"
	SectionCTA          SectionType = "cta"
	SectionTestimonials SectionType = "testimonials"
	SectionFeatures     SectionType = "features"
	SectionNewsletter   SectionType = "newsletter"
	SectionStats        SectionType = "stats"
	SectionFAQ          SectionType = "faq"
	SectionSpacer       SectionType = "spacer"
	SectionDivider      SectionType = "divider"
	SectionCustomHTML   SectionType = "custom_html"
	SectionVideo        SectionType = "video"
	SectionColumns      SectionType = "columns"
)

// SectionTypes returns the palette in display order.
func SectionTypes() []SectionType {
	return []SectionType{
		SectionHero,
		SectionProducts,
		SectionCategories,
		SectionBrands,
		SectionHeading,
		SectionText,
		SectionImage,
		SectionBanner,
		SectionCTA,
		SectionTestimonials,
		SectionFeatures,
		SectionStats,
		SectionFAQ,
		SectionNewsletter,
		SectionVideo,
		SectionColumns,
		SectionCustomHTML,
		SectionSpacer,
		SectionDivider,
	}
}

func (t SectionType) Valid() bool {
	for _, known := range SectionTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// NeedsData reports whether sections of this type fetch collaborator data.
func (t SectionType) NeedsData() bool {
	switch t {
	case SectionProducts, SectionCategories, SectionBrands:
		return true
	}
	return false
}

// BlockType tags a block. The block catalog overlaps the section catalog but
// is not identical: blocks have no data-bound variants and add columns
// nesting.
type BlockType string

const (
	BlockText         BlockType = "text"
	BlockHeading      BlockType = "heading"
	BlockImage        BlockType = "image"
	BlockButton       BlockType = "button"
	BlockTestimonials BlockType = "testimonials"
	BlockFeatures     BlockType = "features"
	BlockStats        BlockType = "stats"
	BlockFAQ          BlockType = "faq"
	BlockVideo        BlockType = "video"
	BlockCustomHTML   BlockType = "custom_html"
	BlockSpacer       BlockType = "spacer"
	BlockDivider      BlockType = "divider"
	BlockColumns      BlockType = "columns"
)

func BlockTypes() []BlockType {
	return []BlockType{
		BlockHeading,
		BlockText,
		BlockImage,
		BlockButton,
		BlockTestimonials,
		BlockFeatures,
		BlockStats,
		BlockFAQ,
		BlockVideo,
		BlockColumns,
		BlockCustomHTML,
		BlockSpacer,
		BlockDivider,
	}
}

func (t BlockType) Valid() bool {
	for _, known := range BlockTypes() {
		if t == known {
			return true
		}
	}
	return false
}
