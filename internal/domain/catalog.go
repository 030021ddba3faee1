package domain

// CatalogItem is an immutable snapshot of one searchable product.
// Snapshots are owned by the catalog provider; the search engine never
// mutates them.
type CatalogItem struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}
