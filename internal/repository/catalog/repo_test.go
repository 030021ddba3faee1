package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/soukly/searchd/internal/domain"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)

	scanCalls int
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	m.scanCalls++
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return nil, nil
}

func TestReload_MapsHashes(t *testing.T) {
	store := &mockStore{
		scanFn: func(_ context.Context, pattern string) ([]string, error) {
			if pattern != domain.KeyPrefix+"*" {
				t.Errorf("scan pattern = %q", pattern)
			}
			return []string{domain.KeyPrefix + "p1", domain.KeyPrefix + "p2"}, nil
		},
		hgetAllMultiFn: func(_ context.Context, keys []string) ([]map[string]string, error) {
			return []map[string]string{
				{"name": "Phone Case", "brand": "Spigen", "category": "Accessories"},
				{"name": "Galaxy S24", "brand": "Samsung"},
			}, nil
		},
	}

	repo := New(store)
	items, err := repo.Reload(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].ID != "p1" || items[0].Name != "Phone Case" || items[0].Brand != "Spigen" {
		t.Errorf("item[0] = %+v", items[0])
	}
	if items[1].ID != "p2" || items[1].Name != "Galaxy S24" {
		t.Errorf("item[1] = %+v", items[1])
	}
}

func TestReload_SkipsIndexKey(t *testing.T) {
	var requested []string
	store := &mockStore{
		scanFn: func(_ context.Context, _ string) ([]string, error) {
			return []string{domain.KeyPrefix + "p1", domain.CatalogIndex}, nil
		},
		hgetAllMultiFn: func(_ context.Context, keys []string) ([]map[string]string, error) {
			requested = keys
			return []map[string]string{{"name": "x"}}, nil
		},
	}

	repo := New(store)
	items, err := repo.Reload(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(requested) != 1 || requested[0] != domain.KeyPrefix+"p1" {
		t.Errorf("requested keys = %v", requested)
	}
	if len(items) != 1 {
		t.Errorf("items = %d, want 1", len(items))
	}
}

func TestReload_SkipsMissingHashes(t *testing.T) {
	store := &mockStore{
		scanFn: func(_ context.Context, _ string) ([]string, error) {
			return []string{domain.KeyPrefix + "p1", domain.KeyPrefix + "gone"}, nil
		},
		hgetAllMultiFn: func(_ context.Context, _ []string) ([]map[string]string, error) {
			return []map[string]string{{"name": "x"}, {}}, nil
		},
	}

	repo := New(store)
	items, err := repo.Reload(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("items = %d, want 1 (empty hash skipped)", len(items))
	}
}

func TestSnapshot_LoadsOnceThenCaches(t *testing.T) {
	store := &mockStore{
		scanFn: func(_ context.Context, _ string) ([]string, error) {
			return []string{domain.KeyPrefix + "p1"}, nil
		},
		hgetAllMultiFn: func(_ context.Context, _ []string) ([]map[string]string, error) {
			return []map[string]string{{"name": "x"}}, nil
		},
	}

	repo := New(store)
	if _, err := repo.Snapshot(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Snapshot(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.scanCalls != 1 {
		t.Errorf("scan calls = %d, want 1", store.scanCalls)
	}
}

func TestSnapshot_RetriesAfterFailure(t *testing.T) {
	fail := true
	store := &mockStore{
		scanFn: func(_ context.Context, _ string) ([]string, error) {
			if fail {
				return nil, errors.New("connection refused")
			}
			return []string{domain.KeyPrefix + "p1"}, nil
		},
		hgetAllMultiFn: func(_ context.Context, _ []string) ([]map[string]string, error) {
			return []map[string]string{{"name": "x"}}, nil
		},
	}

	repo := New(store)
	if _, err := repo.Snapshot(context.Background()); err == nil {
		t.Fatal("expected error on first load")
	}

	fail = false
	items, err := repo.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("items = %d, want 1", len(items))
	}
}
