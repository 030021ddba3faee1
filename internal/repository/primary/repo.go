// Package primary adapts the RediSearch full-text index to the resolver's
// primary tier contract.
package primary

import (
	"context"
	"fmt"
	"strings"

	"github.com/soukly/searchd/internal/db"
	"github.com/soukly/searchd/internal/domain"
)

// store is the consumer interface for full-text search (ISP).
type store interface {
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Repo implements usecase/resolve.PrimarySearcher over the catalog FT index.
type Repo struct {
	store store
}

// New creates a primary search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// FullTextSearch runs the locale-appropriate FT.SEARCH over the catalog
// index and maps the hits back onto catalog items.
func (r *Repo) FullTextSearch(ctx context.Context, query, locale string, limit int) ([]domain.CatalogItem, error) {
	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName: domain.CatalogIndex,
		Query:     query,
		Language:  languageFor(locale),
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("full-text search: %w", err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	items := make([]domain.CatalogItem, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		items = append(items, itemFromEntry(entry))
	}
	return items, nil
}

// languageFor maps a request locale onto an FT.SEARCH stemming language.
// Unknown locales get the English stemmer; the index itself is bilingual.
func languageFor(locale string) string {
	if strings.HasPrefix(strings.ToLower(locale), "ar") {
		return "arabic"
	}
	return "english"
}

func itemFromEntry(entry db.SearchEntry) domain.CatalogItem {
	f := entry.Fields
	return domain.CatalogItem{
		ID:          strings.TrimPrefix(entry.Key, domain.KeyPrefix),
		Slug:        f["slug"],
		Name:        f["name"],
		Brand:       f["brand"],
		Category:    f["category"],
		Subcategory: f["subcategory"],
		Description: f["description"],
		Thumbnail:   f["thumbnail"],
	}
}
