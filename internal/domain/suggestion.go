package domain

// SuggestionKind discriminates the three suggestion variants.
type SuggestionKind string

const (
	// SuggestionProduct points at a single catalog item.
	SuggestionProduct SuggestionKind = "product"
	// SuggestionBrand groups matches under a brand name.
	SuggestionBrand SuggestionKind = "brand"
	// SuggestionCategory groups matches under a category name.
	SuggestionCategory SuggestionKind = "category"
)

// Segment is one run of a field's display text, highlighted or not.
type Segment struct {
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted"`
}

// Suggestion is a single autocomplete candidate. It is a tagged variant:
// Item is meaningful only for product suggestions, Count only for brand and
// category suggestions. Construct through the New*Suggestion functions so
// the invariant holds. Highlight, when present, splits the normalized name
// into matched and unmatched runs.
type Suggestion struct {
	Kind      SuggestionKind `json:"type"`
	Value     string         `json:"value"`
	Label     string         `json:"label"`
	Item      *CatalogItem   `json:"item,omitempty"`
	Count     int            `json:"count,omitempty"`
	Thumbnail string         `json:"thumbnail,omitempty"`
	Highlight []Segment      `json:"highlight,omitempty"`
}

// NewProductSuggestion creates a product suggestion from a catalog item.
func NewProductSuggestion(item CatalogItem) Suggestion {
	return Suggestion{
		Kind:      SuggestionProduct,
		Value:     item.ID,
		Label:     item.Name,
		Item:      &item,
		Thumbnail: item.Thumbnail,
	}
}

// NewBrandSuggestion creates a brand suggestion with its match frequency.
func NewBrandSuggestion(brand string, count int) Suggestion {
	return Suggestion{
		Kind:  SuggestionBrand,
		Value: brand,
		Label: brand,
		Count: count,
	}
}

// NewCategorySuggestion creates a category suggestion with its match frequency.
func NewCategorySuggestion(category string, count int) Suggestion {
	return Suggestion{
		Kind:  SuggestionCategory,
		Value: category,
		Label: category,
		Count: count,
	}
}
