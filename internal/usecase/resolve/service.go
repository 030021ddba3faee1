// Package resolve orchestrates the multi-tier suggestion pipeline: sanitize,
// primary full-text tier, fallback cache, in-process fuzzy tier.
package resolve

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/soukly/searchd/internal/cache"
	"github.com/soukly/searchd/internal/domain"
	"github.com/soukly/searchd/internal/fuzzy"
	"github.com/soukly/searchd/internal/highlight"
	"github.com/soukly/searchd/internal/metrics"
	"github.com/soukly/searchd/internal/suggest"
	"github.com/soukly/searchd/internal/textnorm"
)

// Source tags which tier produced a resolution. It is diagnostic only and
// never changes the shape of the suggestion list.
type Source string

// Resolution sources.
const (
	SourcePrimary  Source = "primary"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
	SourceEmpty    Source = "empty"
)

// Resolution is the terminal state of one resolve request.
type Resolution struct {
	Suggestions []domain.Suggestion `json:"suggestions"`
	Source      Source              `json:"source"`
}

// Defaults for query length policy and the primary tier fetch size.
const (
	DefaultMinQueryLen    = 2
	DefaultMaxQueryLen    = 128
	DefaultPrimaryLimit   = 20
	DefaultPrimaryTimeout = 300 * time.Millisecond
)

// Service resolves a raw query and locale into typed suggestions. For a
// well-formed, length-valid query Resolve never returns an error: backend
// failures are logged and degrade to a lower-fidelity tier.
type Service struct {
	primary PrimarySearcher
	catalog CatalogReader
	ranker  *fuzzy.Ranker
	cache   *cache.Fallback
	logger  *zap.Logger

	minQueryLen    int
	maxQueryLen    int
	primaryLimit   int
	primaryTimeout time.Duration
	caps           suggest.Caps
}

// New creates a resolve service with default limits and caps.
func New(primary PrimarySearcher, catalog CatalogReader, fc *cache.Fallback, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		primary:        primary,
		catalog:        catalog,
		ranker:         fuzzy.NewRanker(),
		cache:          fc,
		logger:         logger,
		minQueryLen:    DefaultMinQueryLen,
		maxQueryLen:    DefaultMaxQueryLen,
		primaryLimit:   DefaultPrimaryLimit,
		primaryTimeout: DefaultPrimaryTimeout,
		caps:           suggest.DefaultCaps,
	}
}

// WithLimits overrides the query length policy.
func (s *Service) WithLimits(minLen, maxLen int) *Service {
	if minLen > 0 {
		s.minQueryLen = minLen
	}
	if maxLen > 0 {
		s.maxQueryLen = maxLen
	}
	return s
}

// WithCaps overrides the suggestion group caps.
func (s *Service) WithCaps(caps suggest.Caps) *Service {
	s.caps = caps
	return s
}

// WithPrimaryLimit overrides the primary tier fetch size.
func (s *Service) WithPrimaryLimit(limit int) *Service {
	if limit > 0 {
		s.primaryLimit = limit
	}
	return s
}

// WithPrimaryTimeout bounds how long the primary tier may take before the
// resolver falls through to the fuzzy tier.
func (s *Service) WithPrimaryTimeout(d time.Duration) *Service {
	if d > 0 {
		s.primaryTimeout = d
	}
	return s
}

// Resolve runs the tier pipeline for one request. Tier order is strict and
// no tier is retried: primary full-text search first, then the fallback
// cache, then the in-process fuzzy tier whose result is cached.
//
// Input errors are the only errors surfaced: domain.ErrQueryInvalid when the
// query is empty after sanitization, and a domain.QueryTooLongError carrying
// the truncated query when it exceeds the maximum length. A sanitized query
// shorter than the minimum resolves to an empty suggestion list with source
// "empty" without touching any tier.
func (s *Service) Resolve(ctx context.Context, rawQuery, locale string) (Resolution, error) {
	sanitized := textnorm.Sanitize(rawQuery)
	if sanitized == "" {
		return Resolution{}, domain.ErrQueryInvalid
	}
	if n := utf8.RuneCountInString(sanitized); n > s.maxQueryLen {
		return Resolution{}, domain.NewQueryTooLong(truncateRunes(sanitized, s.maxQueryLen))
	} else if n < s.minQueryLen {
		metrics.SuggestResolvedTotal.WithLabelValues(string(SourceEmpty)).Inc()
		return Resolution{Suggestions: []domain.Suggestion{}, Source: SourceEmpty}, nil
	}

	if res, ok := s.resolvePrimary(ctx, sanitized, locale); ok {
		metrics.SuggestResolvedTotal.WithLabelValues(string(SourcePrimary)).Inc()
		return res, nil
	}

	key := cacheKey(locale, sanitized)
	if cached, ok := s.cache.Get(key); ok {
		metrics.FallbackCacheTotal.WithLabelValues("hit").Inc()
		metrics.SuggestResolvedTotal.WithLabelValues(string(SourceCache)).Inc()
		return Resolution{Suggestions: cached, Source: SourceCache}, nil
	}
	metrics.FallbackCacheTotal.WithLabelValues("miss").Inc()

	res := s.resolveFallback(ctx, sanitized)
	s.cache.Set(key, res.Suggestions)
	metrics.SuggestResolvedTotal.WithLabelValues(string(SourceFallback)).Inc()
	return res, nil
}

// resolvePrimary tries the full-text tier. A failed or empty response
// reports not-ok so the caller proceeds to the next tier; failures
// (including context cancellation) are logged, never propagated.
func (s *Service) resolvePrimary(ctx context.Context, query, locale string) (Resolution, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.primaryTimeout)
	defer cancel()

	items, err := s.primary.FullTextSearch(ctx, query, locale, s.primaryLimit)
	if err != nil {
		metrics.PrimaryTierErrorsTotal.Inc()
		s.logger.Warn("primary search tier failed, falling back",
			zap.String("locale", locale),
			zap.Error(err),
		)
		return Resolution{}, false
	}
	if len(items) == 0 {
		return Resolution{}, false
	}
	return Resolution{
		Suggestions: suggest.Aggregate(items, s.caps),
		Source:      SourcePrimary,
	}, true
}

// resolveFallback ranks the in-memory catalog snapshot with the fuzzy tier.
// Product suggestions carry highlighted name segments built from the match
// ranges. A snapshot failure degrades to an empty suggestion list.
func (s *Service) resolveFallback(ctx context.Context, query string) Resolution {
	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		s.logger.Warn("catalog snapshot unavailable for fallback tier", zap.Error(err))
	}

	matches := s.ranker.Rank(catalog, query)
	items := make([]domain.CatalogItem, len(matches))
	nameRanges := make(map[string][]highlight.Range, len(matches))
	for i, m := range matches {
		items[i] = m.Item
		for _, r := range m.Ranges {
			if r.Field == fuzzy.FieldName {
				nameRanges[m.Item.ID] = append(nameRanges[m.Item.ID], highlight.Range{Start: r.Start, End: r.End})
			}
		}
	}

	suggestions := suggest.Aggregate(items, s.caps)
	for i, sg := range suggestions {
		if sg.Kind != domain.SuggestionProduct || sg.Item == nil {
			continue
		}
		if ranges, ok := nameRanges[sg.Value]; ok {
			suggestions[i].Highlight = highlight.Merge(textnorm.Normalize(sg.Item.Name), ranges)
		}
	}

	return Resolution{Suggestions: suggestions, Source: SourceFallback}
}

// cacheKey builds the fallback cache key from the locale and the lowercased
// normalized query.
func cacheKey(locale, sanitized string) string {
	return locale + ":" + strings.ToLower(textnorm.Normalize(sanitized))
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
