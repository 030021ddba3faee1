package domain

// Redis key layout for the product catalog.
const (
	// KeyPrefix prefixes every product hash key.
	KeyPrefix = "searchd:product:"
	// CatalogIndex is the FT index over the product hashes.
	CatalogIndex = "searchd:product:idx"
)
