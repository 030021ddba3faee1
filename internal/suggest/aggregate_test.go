package suggest

import (
	"testing"

	"github.com/soukly/searchd/internal/domain"
)

func item(id, name, brand, category string) domain.CatalogItem {
	return domain.CatalogItem{ID: id, Name: name, Brand: brand, Category: category}
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil, DefaultCaps)
	if len(got) != 0 {
		t.Fatalf("expected no suggestions, got %d", len(got))
	}
}

func TestAggregateProductOrderPreserved(t *testing.T) {
	items := []domain.CatalogItem{
		item("p1", "Galaxy S24", "Samsung", "Phones"),
		item("p2", "Galaxy A54", "Samsung", "Phones"),
		item("p3", "Pixel 9", "Google", "Phones"),
	}

	got := Aggregate(items, Caps{Product: 2, Brand: 3, Category: 3})

	if got[0].Kind != domain.SuggestionProduct || got[0].Value != "p1" {
		t.Errorf("first suggestion = %+v, want product p1", got[0])
	}
	if got[1].Kind != domain.SuggestionProduct || got[1].Value != "p2" {
		t.Errorf("second suggestion = %+v, want product p2", got[1])
	}
	if got[0].Item == nil || got[0].Item.Name != "Galaxy S24" {
		t.Errorf("product suggestion missing item payload: %+v", got[0])
	}

	products := 0
	for _, s := range got {
		if s.Kind == domain.SuggestionProduct {
			products++
		}
	}
	if products != 2 {
		t.Errorf("product count = %d, want 2 (cap)", products)
	}
}

func TestAggregateBrandCapAndFrequency(t *testing.T) {
	items := []domain.CatalogItem{
		item("p1", "a", "Sony", "TVs"),
		item("p2", "b", "Samsung", "TVs"),
		item("p3", "c", "Samsung", "Phones"),
		item("p4", "d", "Samsung", "Phones"),
		item("p5", "e", "Sony", "Audio"),
		item("p6", "f", "LG", "TVs"),
	}

	got := Aggregate(items, Caps{Product: 0, Brand: 2, Category: 0})

	if len(got) != 2 {
		t.Fatalf("suggestion count = %d, want 2", len(got))
	}
	if got[0].Value != "Samsung" || got[0].Count != 3 {
		t.Errorf("top brand = %s (%d), want Samsung (3)", got[0].Value, got[0].Count)
	}
	if got[1].Value != "Sony" || got[1].Count != 2 {
		t.Errorf("second brand = %s (%d), want Sony (2)", got[1].Value, got[1].Count)
	}
}

func TestAggregateBrandCountsFullSetNotProductCap(t *testing.T) {
	// Brand frequencies come from every ranked item, not just the products
	// that made the product cap.
	items := []domain.CatalogItem{
		item("p1", "a", "LG", "TVs"),
		item("p2", "b", "Samsung", "TVs"),
		item("p3", "c", "Samsung", "TVs"),
	}

	got := Aggregate(items, Caps{Product: 1, Brand: 1, Category: 0})

	if len(got) != 2 {
		t.Fatalf("suggestion count = %d, want 2", len(got))
	}
	if got[1].Kind != domain.SuggestionBrand || got[1].Value != "Samsung" || got[1].Count != 2 {
		t.Errorf("brand suggestion = %+v, want Samsung count 2", got[1])
	}
}

func TestAggregateFirstSeenBreaksTies(t *testing.T) {
	items := []domain.CatalogItem{
		item("p1", "a", "", "Audio"),
		item("p2", "b", "", "Phones"),
		item("p3", "c", "", "Audio"),
		item("p4", "d", "", "Phones"),
	}

	got := Aggregate(items, Caps{Category: 2})

	if got[0].Value != "Audio" || got[1].Value != "Phones" {
		t.Errorf("tied categories ordered %s, %s; want Audio, Phones", got[0].Value, got[1].Value)
	}
}

func TestAggregateSkipsEmptyGroups(t *testing.T) {
	items := []domain.CatalogItem{
		item("p1", "a", "", ""),
		item("p2", "b", "Bosch", ""),
	}

	got := Aggregate(items, Caps{Brand: 3, Category: 3})

	if len(got) != 1 {
		t.Fatalf("suggestion count = %d, want 1", len(got))
	}
	if got[0].Kind != domain.SuggestionBrand || got[0].Value != "Bosch" {
		t.Errorf("suggestion = %+v, want brand Bosch", got[0])
	}
}

func TestAggregateTotalCapTruncates(t *testing.T) {
	items := []domain.CatalogItem{
		item("p1", "a", "Sony", "TVs"),
		item("p2", "b", "LG", "Audio"),
		item("p3", "c", "Bosch", "Tools"),
	}

	got := Aggregate(items, Caps{Product: 3, Brand: 3, Category: 3, Total: 4})

	if len(got) != 4 {
		t.Fatalf("suggestion count = %d, want 4", len(got))
	}
	// Products come first, so truncation drops trailing category groups.
	for i := 0; i < 3; i++ {
		if got[i].Kind != domain.SuggestionProduct {
			t.Errorf("suggestion %d kind = %s, want product", i, got[i].Kind)
		}
	}
	if got[3].Kind != domain.SuggestionBrand {
		t.Errorf("suggestion 3 kind = %s, want brand", got[3].Kind)
	}
}
