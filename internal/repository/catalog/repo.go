// Package catalog loads the searchable product catalog from Redis hashes
// and serves the in-memory snapshot consumed by the fuzzy fallback tier.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/soukly/searchd/internal/domain"
)

// store is the consumer interface for catalog reads (ISP).
type store interface {
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/resolve.CatalogReader. The snapshot is loaded once
// and then reused for every request; Reload is the explicit refresh hook for
// the owning process.
type Repo struct {
	store store

	mu       sync.RWMutex
	snapshot []domain.CatalogItem
	loaded   bool
}

// New creates a catalog repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Snapshot returns the catalog snapshot, loading it on first use. A load
// failure leaves the repository unloaded so a later call can retry.
func (r *Repo) Snapshot(ctx context.Context) ([]domain.CatalogItem, error) {
	r.mu.RLock()
	if r.loaded {
		defer r.mu.RUnlock()
		return r.snapshot, nil
	}
	r.mu.RUnlock()

	return r.Reload(ctx)
}

// Reload reads the full catalog from the store and replaces the snapshot.
func (r *Repo) Reload(ctx context.Context) ([]domain.CatalogItem, error) {
	keys, err := r.store.Scan(ctx, domain.KeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan catalog keys: %w", err)
	}

	// The FT index key shares the product prefix; skip it.
	productKeys := keys[:0]
	for _, k := range keys {
		if k != domain.CatalogIndex {
			productKeys = append(productKeys, k)
		}
	}

	hashes, err := r.store.HGetAllMulti(ctx, productKeys)
	if err != nil {
		return nil, fmt.Errorf("load catalog hashes: %w", err)
	}

	items := make([]domain.CatalogItem, 0, len(hashes))
	for i, fields := range hashes {
		if len(fields) == 0 {
			continue
		}
		items = append(items, itemFromHash(productKeys[i], fields))
	}

	r.mu.Lock()
	r.snapshot = items
	r.loaded = true
	r.mu.Unlock()

	return items, nil
}

// itemFromHash maps a product hash onto a catalog item. The document ID is
// the key with the catalog prefix stripped.
func itemFromHash(key string, fields map[string]string) domain.CatalogItem {
	return domain.CatalogItem{
		ID:          strings.TrimPrefix(key, domain.KeyPrefix),
		Slug:        fields["slug"],
		Name:        fields["name"],
		Brand:       fields["brand"],
		Category:    fields["category"],
		Subcategory: fields["subcategory"],
		Description: fields["description"],
		Thumbnail:   fields["thumbnail"],
	}
}
