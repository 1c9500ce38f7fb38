package recall

import (
	"context"
	"testing"

	"github.com/rushteam/movietrack/core"
)

type sliceCatalog []*core.Movie

func (c sliceCatalog) All() []*core.Movie { return c }
func (c sliceCatalog) Get(id string) (*core.Movie, bool) {
	for _, m := range c {
		if core.CanonicalID(m.ID) == core.CanonicalID(id) {
			return m, true
		}
	}
	return nil, false
}

func TestCatalogSourceKeepsOrder(t *testing.T) {
	cat := sliceCatalog{
		{ID: "m3", Title: "C"},
		nil,
		{ID: "M1", Title: "A"},
		{ID: "m2", Title: "B"},
	}

	items, err := (&CatalogSource{Catalog: cat}).Recall(context.Background(), nil)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	want := []string{"M3", "M1", "M2"}
	if len(items) != len(want) {
		t.Fatalf("Recall() returned %d items, want %d", len(items), len(want))
	}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, id)
		}
		if lbl := items[i].Labels["recall_source"]; lbl.Value != "catalog" {
			t.Errorf("items[%d] recall_source label = %+v", i, lbl)
		}
	}
}

func TestCatalogSourceFallsBackToContext(t *testing.T) {
	rctx := &core.RecommendContext{Catalog: sliceCatalog{{ID: "x1"}}}
	items, err := (&CatalogSource{}).Process(context.Background(), rctx, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "X1" {
		t.Errorf("Process() = %v", core.Movies(items))
	}

	items, err = (&CatalogSource{}).Recall(context.Background(), &core.RecommendContext{})
	if err != nil || len(items) != 0 {
		t.Errorf("Recall() without catalog = %v, %v", items, err)
	}
}
