// Package suggest turns ranked catalog matches into typed, capped suggestion
// groups.
package suggest

import (
	"sort"

	"github.com/soukly/searchd/internal/domain"
)

// Caps bounds each suggestion group and, optionally, the combined result.
type Caps struct {
	Product  int
	Brand    int
	Category int
	// Total truncates the concatenated result when positive.
	Total int
}

// DefaultCaps are the storefront autocomplete defaults.
var DefaultCaps = Caps{Product: 5, Brand: 3, Category: 3}

// Aggregate builds the suggestion list for a ranked candidate set: the top
// Caps.Product items as product suggestions in rank order, then brand and
// category groups counted over the full candidate set, sorted by descending
// frequency with first-seen order breaking ties. Product, brand, and
// category suggestions concatenate in that order.
func Aggregate(items []domain.CatalogItem, caps Caps) []domain.Suggestion {
	suggestions := make([]domain.Suggestion, 0, caps.Product+caps.Brand+caps.Category)

	for i, item := range items {
		if i >= caps.Product {
			break
		}
		suggestions = append(suggestions, domain.NewProductSuggestion(item))
	}

	brands := countGroups(items, func(it domain.CatalogItem) string { return it.Brand })
	for i, g := range brands {
		if i >= caps.Brand {
			break
		}
		suggestions = append(suggestions, domain.NewBrandSuggestion(g.value, g.count))
	}

	categories := countGroups(items, func(it domain.CatalogItem) string { return it.Category })
	for i, g := range categories {
		if i >= caps.Category {
			break
		}
		suggestions = append(suggestions, domain.NewCategorySuggestion(g.value, g.count))
	}

	if caps.Total > 0 && len(suggestions) > caps.Total {
		suggestions = suggestions[:caps.Total]
	}
	return suggestions
}

type group struct {
	value string
	count int
	seen  int
}

// countGroups counts occurrences of a grouping key across all items,
// skipping empty keys, and returns the groups sorted by descending count with
// first-seen order as the tiebreak.
func countGroups(items []domain.CatalogItem, key func(domain.CatalogItem) string) []group {
	index := make(map[string]int)
	var groups []group

	for _, item := range items {
		v := key(item)
		if v == "" {
			continue
		}
		if i, ok := index[v]; ok {
			groups[i].count++
			continue
		}
		index[v] = len(groups)
		groups = append(groups, group{value: v, count: 1, seen: len(groups)})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].seen < groups[j].seen
	})
	return groups
}
