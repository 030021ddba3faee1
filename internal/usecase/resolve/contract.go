package resolve

import (
	"context"

	"github.com/soukly/searchd/internal/domain"
)

// PrimarySearcher is the primary full-text tier: a bilingual, operator-aware
// backend search. It may fail or return nothing; the resolver recovers
// either way.
type PrimarySearcher interface {
	FullTextSearch(ctx context.Context, query, locale string, limit int) ([]domain.CatalogItem, error)
}

// CatalogReader serves the in-memory catalog snapshot consumed by the fuzzy
// fallback tier. Implementations load the snapshot once per process, not per
// request.
type CatalogReader interface {
	Snapshot(ctx context.Context) ([]domain.CatalogItem, error)
}
