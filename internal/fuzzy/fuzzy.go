// Package fuzzy scores and ranks catalog items against a normalized query.
// Scores live in [0, 1] where 0 is a perfect match and 1 is no match; lower
// is better. Matching is location-independent: an occurrence anywhere in a
// field counts the same.
package fuzzy

import (
	"math"
	"sort"

	"github.com/soukly/searchd/internal/domain"
	"github.com/soukly/searchd/internal/textnorm"
)

// Field names a searchable catalog field.
type Field string

// Searchable catalog fields.
const (
	FieldName        Field = "name"
	FieldBrand       Field = "brand"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
	FieldSubcategory Field = "subcategory"
)

// MatchRange is an inclusive [Start, End] rune range into the normalized
// text of one field.
type MatchRange struct {
	Field Field `json:"field"`
	Start int   `json:"start"`
	End   int   `json:"end"`
}

// ScoredMatch pairs a catalog item with its relevance score and the ranges
// that produced it. Produced fresh per query, never persisted.
type ScoredMatch struct {
	Item   domain.CatalogItem
	Score  float64
	Ranges []MatchRange
}

// fieldWeight orders fields by importance. Weights are applied as exponents
// on the per-field base score, so a heavier field pulls the combined score
// closer to zero for the same base score.
var fieldWeight = map[Field]float64{
	FieldName:        1.0,
	FieldBrand:       0.8,
	FieldDescription: 0.5,
	FieldCategory:    0.3,
	FieldSubcategory: 0.3,
}

// rankedFields is the evaluation order for Rank.
var rankedFields = []Field{FieldName, FieldBrand, FieldDescription, FieldCategory, FieldSubcategory}

const (
	defaultThreshold = 0.3
	strictThreshold  = 0.2
	minFragmentLen   = 2

	// epsilon replaces a perfect per-field score before weighting, so that
	// an exact hit on a heavy field still outranks one on a light field.
	epsilon = 1e-9
)

// Ranker ranks catalog items by fuzzy relevance across weighted fields.
// The zero value is not usable; construct with NewRanker.
type Ranker struct {
	threshold float64
}

// NewRanker creates a ranker with the default match threshold.
func NewRanker() *Ranker {
	return &Ranker{threshold: defaultThreshold}
}

// Rank scores every catalog item against query and returns the matches
// sorted ascending by score, best first. Ties keep the original catalog
// order. An empty catalog yields an empty result. The query must already be
// sanitized and non-empty; it is normalized per field internally.
func (r *Ranker) Rank(catalog []domain.CatalogItem, query string) []ScoredMatch {
	pattern := []rune(textnorm.Normalize(query))
	if len(pattern) < minFragmentLen {
		return nil
	}

	matches := make([]ScoredMatch, 0, len(catalog))
	for _, item := range catalog {
		score := 1.0
		var ranges []MatchRange
		matched := false

		for _, field := range rankedFields {
			base, fieldRanges, ok := scoreField(pattern, fieldValue(item, field), r.threshold)
			if !ok {
				continue
			}
			matched = true
			score *= weighted(base, fieldWeight[field])
			for _, fr := range fieldRanges {
				ranges = append(ranges, MatchRange{Field: field, Start: fr.start, End: fr.end})
			}
		}

		if matched {
			matches = append(matches, ScoredMatch{Item: item, Score: score, Ranges: ranges})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score < matches[j].Score
	})
	return matches
}

// RankByField is the stricter single-field variant used to derive brand and
// category suggestions. It returns the matching items best first.
func (r *Ranker) RankByField(catalog []domain.CatalogItem, query string, field Field) []domain.CatalogItem {
	pattern := []rune(textnorm.Normalize(query))
	if len(pattern) < minFragmentLen {
		return nil
	}

	type scored struct {
		item  domain.CatalogItem
		score float64
	}
	matches := make([]scored, 0, len(catalog))
	for _, item := range catalog {
		base, _, ok := scoreField(pattern, fieldValue(item, field), strictThreshold)
		if !ok {
			continue
		}
		matches = append(matches, scored{item: item, score: base})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score < matches[j].score
	})

	items := make([]domain.CatalogItem, len(matches))
	for i, m := range matches {
		items[i] = m.item
	}
	return items
}

// weighted applies a field weight as an exponent, substituting epsilon for a
// perfect score so weights stay observable in the combined product.
func weighted(base, weight float64) float64 {
	if base == 0 {
		base = epsilon
	}
	return math.Pow(base, weight)
}

// fieldValue returns the raw text of one field.
func fieldValue(item domain.CatalogItem, field Field) string {
	switch field {
	case FieldName:
		return item.Name
	case FieldBrand:
		return item.Brand
	case FieldDescription:
		return item.Description
	case FieldCategory:
		return item.Category
	case FieldSubcategory:
		return item.Subcategory
	}
	return ""
}
