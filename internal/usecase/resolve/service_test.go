package resolve

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/soukly/searchd/internal/cache"
	"github.com/soukly/searchd/internal/domain"
)

// --- Mocks ---

type mockPrimary struct {
	items []domain.CatalogItem
	err   error

	calls      int
	lastQuery  string
	lastLocale string
	lastLimit  int
}

func (m *mockPrimary) FullTextSearch(_ context.Context, query, locale string, limit int) ([]domain.CatalogItem, error) {
	m.calls++
	m.lastQuery = query
	m.lastLocale = locale
	m.lastLimit = limit
	return m.items, m.err
}

type mockCatalog struct {
	items []domain.CatalogItem
	err   error
	calls int
}

func (m *mockCatalog) Snapshot(_ context.Context) ([]domain.CatalogItem, error) {
	m.calls++
	return m.items, m.err
}

func newTestService(primary *mockPrimary, catalog *mockCatalog) *Service {
	return New(primary, catalog, cache.NewFallback(10, time.Minute), nil)
}

func phoneCatalog() []domain.CatalogItem {
	return []domain.CatalogItem{
		{ID: "p1", Name: "Phone Case", Brand: "Spigen", Category: "Accessories"},
		{ID: "p2", Name: "Smartphone Stand", Brand: "Ugreen", Category: "Accessories"},
		{ID: "p3", Name: "Washing Machine", Brand: "Bosch", Category: "Appliances"},
	}
}

// --- Tier ordering ---

func TestResolve_PrimarySuccess(t *testing.T) {
	primary := &mockPrimary{items: phoneCatalog()[:2]}
	catalog := &mockCatalog{}
	svc := newTestService(primary, catalog)

	res, err := svc.Resolve(context.Background(), "phone", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourcePrimary {
		t.Errorf("source = %s, want primary", res.Source)
	}
	if len(res.Suggestions) == 0 {
		t.Fatal("expected suggestions from primary tier")
	}
	if res.Suggestions[0].Kind != domain.SuggestionProduct || res.Suggestions[0].Value != "p1" {
		t.Errorf("first suggestion = %+v, want product p1", res.Suggestions[0])
	}
	if catalog.calls != 0 {
		t.Errorf("fallback tier ran %d times on a primary success", catalog.calls)
	}
	if primary.lastQuery != "phone" || primary.lastLocale != "en" {
		t.Errorf("primary called with (%q, %q)", primary.lastQuery, primary.lastLocale)
	}
	if primary.lastLimit != DefaultPrimaryLimit {
		t.Errorf("primary limit = %d, want %d", primary.lastLimit, DefaultPrimaryLimit)
	}
}

func TestResolve_PrimaryErrorFallsBack(t *testing.T) {
	primary := &mockPrimary{err: errors.New("connection refused")}
	catalog := &mockCatalog{items: phoneCatalog()}
	svc := newTestService(primary, catalog)

	res, err := svc.Resolve(context.Background(), "phone", "en")
	if err != nil {
		t.Fatalf("backend failure must not surface: %v", err)
	}
	if res.Source != SourceFallback {
		t.Errorf("source = %s, want fallback", res.Source)
	}
	if catalog.calls != 1 {
		t.Fatalf("fallback tier calls = %d, want 1", catalog.calls)
	}
	if len(res.Suggestions) == 0 {
		t.Fatal("expected fuzzy matches for phone")
	}
	for _, s := range res.Suggestions {
		if s.Kind == domain.SuggestionProduct && s.Value == "p3" {
			t.Error("washing machine should not fuzzy-match phone")
		}
	}
}

func TestResolve_PrimaryEmptyFallsBack(t *testing.T) {
	primary := &mockPrimary{}
	catalog := &mockCatalog{items: phoneCatalog()}
	svc := newTestService(primary, catalog)

	res, err := svc.Resolve(context.Background(), "phone", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceFallback {
		t.Errorf("source = %s, want fallback when primary returns nothing", res.Source)
	}
}

func TestResolve_CacheServesSecondCall(t *testing.T) {
	primary := &mockPrimary{err: errors.New("down")}
	catalog := &mockCatalog{items: phoneCatalog()}
	svc := newTestService(primary, catalog)

	first, err := svc.Resolve(context.Background(), "phone", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Source != SourceFallback {
		t.Fatalf("first source = %s, want fallback", first.Source)
	}

	second, err := svc.Resolve(context.Background(), "phone", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Source != SourceCache {
		t.Errorf("second source = %s, want cache", second.Source)
	}
	if catalog.calls != 1 {
		t.Errorf("fallback tier calls = %d, want 1 (cached on repeat)", catalog.calls)
	}
	if len(second.Suggestions) != len(first.Suggestions) {
		t.Errorf("cached suggestions = %d, want %d", len(second.Suggestions), len(first.Suggestions))
	}
}

func TestResolve_CacheKeyIncludesLocale(t *testing.T) {
	primary := &mockPrimary{err: errors.New("down")}
	catalog := &mockCatalog{items: phoneCatalog()}
	svc := newTestService(primary, catalog)

	if _, err := svc.Resolve(context.Background(), "phone", "en"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := svc.Resolve(context.Background(), "phone", "ar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceFallback {
		t.Errorf("source = %s, want fallback for a different locale", res.Source)
	}
	if catalog.calls != 2 {
		t.Errorf("fallback tier calls = %d, want 2", catalog.calls)
	}
}

func TestResolve_CacheKeyNormalizesQuery(t *testing.T) {
	primary := &mockPrimary{err: errors.New("down")}
	catalog := &mockCatalog{items: phoneCatalog()}
	svc := newTestService(primary, catalog)

	if _, err := svc.Resolve(context.Background(), "Phone", "en"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := svc.Resolve(context.Background(), "  phone ", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceCache {
		t.Errorf("source = %s, want cache for a case and whitespace variant", res.Source)
	}
}

// --- Input policy ---

func TestResolve_EmptyAfterSanitize(t *testing.T) {
	primary := &mockPrimary{}
	catalog := &mockCatalog{}
	svc := newTestService(primary, catalog)

	_, err := svc.Resolve(context.Background(), "  !! () ", "en")
	if !errors.Is(err, domain.ErrQueryInvalid) {
		t.Fatalf("err = %v, want ErrQueryInvalid", err)
	}
	if primary.calls != 0 || catalog.calls != 0 {
		t.Error("no tier should run for an invalid query")
	}
}

func TestResolve_ShortQueryResolvesEmpty(t *testing.T) {
	primary := &mockPrimary{items: phoneCatalog()}
	catalog := &mockCatalog{items: phoneCatalog()}
	svc := newTestService(primary, catalog)

	res, err := svc.Resolve(context.Background(), "p", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceEmpty {
		t.Errorf("source = %s, want empty", res.Source)
	}
	if len(res.Suggestions) != 0 {
		t.Errorf("suggestions = %d, want 0", len(res.Suggestions))
	}
	if res.Suggestions == nil {
		t.Error("suggestions should be an empty slice, not nil")
	}
	if primary.calls != 0 || catalog.calls != 0 {
		t.Error("no tier should run for a short query")
	}
}

func TestResolve_TooLongQuery(t *testing.T) {
	primary := &mockPrimary{}
	catalog := &mockCatalog{}
	svc := newTestService(primary, catalog)

	_, err := svc.Resolve(context.Background(), strings.Repeat("a", 200), "en")

	var tooLong *domain.QueryTooLongError
	if !errors.As(err, &tooLong) {
		t.Fatalf("err = %v, want QueryTooLongError", err)
	}
	if n := utf8.RuneCountInString(tooLong.Truncated); n != DefaultMaxQueryLen {
		t.Errorf("truncated length = %d, want %d", n, DefaultMaxQueryLen)
	}
	if primary.calls != 0 {
		t.Error("primary tier should not run for an over-length query")
	}
}

func TestResolve_LimitsOverride(t *testing.T) {
	primary := &mockPrimary{items: phoneCatalog()[:1]}
	catalog := &mockCatalog{}
	svc := newTestService(primary, catalog).WithLimits(3, 10).WithPrimaryLimit(5)

	res, err := svc.Resolve(context.Background(), "ph", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceEmpty {
		t.Errorf("source = %s, want empty under raised minimum", res.Source)
	}

	if _, err := svc.Resolve(context.Background(), "phone", "en"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if primary.lastLimit != 5 {
		t.Errorf("primary limit = %d, want 5", primary.lastLimit)
	}
}

func TestResolve_FallbackHighlightsName(t *testing.T) {
	primary := &mockPrimary{err: errors.New("down")}
	catalog := &mockCatalog{items: phoneCatalog()}
	svc := newTestService(primary, catalog)

	res, err := svc.Resolve(context.Background(), "phone", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var product *domain.Suggestion
	for i := range res.Suggestions {
		if res.Suggestions[i].Kind == domain.SuggestionProduct && res.Suggestions[i].Value == "p1" {
			product = &res.Suggestions[i]
			break
		}
	}
	if product == nil {
		t.Fatal("expected a product suggestion for p1")
	}
	if len(product.Highlight) == 0 {
		t.Fatal("expected highlight segments on a fallback product suggestion")
	}

	var joined strings.Builder
	highlighted := false
	for _, seg := range product.Highlight {
		joined.WriteString(seg.Text)
		highlighted = highlighted || seg.Highlighted
	}
	if joined.String() != "phone case" {
		t.Errorf("segments concatenate to %q, want the normalized name", joined.String())
	}
	if !highlighted {
		t.Error("expected at least one highlighted segment")
	}
}

func TestResolve_FallbackSnapshotError(t *testing.T) {
	primary := &mockPrimary{err: errors.New("down")}
	catalog := &mockCatalog{err: errors.New("scan failed")}
	svc := newTestService(primary, catalog)

	res, err := svc.Resolve(context.Background(), "phone", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceFallback {
		t.Errorf("source = %s, want fallback", res.Source)
	}
	if len(res.Suggestions) != 0 {
		t.Errorf("suggestions = %d, want 0 when the snapshot is unavailable", len(res.Suggestions))
	}
}
