package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/movietrack/core"
	"github.com/rushteam/movietrack/store"
)

type interactions struct {
	watchlist map[string]bool
	history   map[string]bool
}

func (u interactions) InWatchlist(id string) bool { return u.watchlist[core.CanonicalID(id)] }
func (u interactions) InHistory(id string) bool   { return u.history[core.CanonicalID(id)] }

func items(movies ...*core.Movie) []*core.Item {
	out := make([]*core.Item, 0, len(movies))
	for _, m := range movies {
		out = append(out, core.NewItem(m))
	}
	return out
}

func ids(items []*core.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var (
	drama   = &core.Movie{ID: "m1", Genre: "Drama", Year: 1994, Rating: 9.3}
	comedy  = &core.Movie{ID: "m2", Genre: "Comedy", Year: 2004, Rating: 7.1}
	comedy2 = &core.Movie{ID: "M3", Genre: "comedy", Year: 1980, Rating: 6.0}
	action  = &core.Movie{ID: "m4", Genre: "Action", Year: 2010, Rating: 8.8}
)

func TestGenreFilter(t *testing.T) {
	tests := []struct {
		name  string
		genre string
		want  []string
	}{
		{name: "no filter keeps all", genre: "", want: []string{"M1", "M2", "M3", "M4"}},
		{name: "case-insensitive match", genre: "COMEDY", want: []string{"M2", "M3"}},
		{name: "lower-case filter", genre: "comedy", want: []string{"M2", "M3"}},
		{name: "absent genre", genre: "Horror", want: []string{}},
		{name: "whitespace genre matches nothing", genre: "   ", want: []string{}},
		{name: "padded genre is not trimmed", genre: " comedy ", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &FilterNode{Filters: []Filter{NewGenreFilter(tt.genre)}}
			got, err := node.Process(context.Background(), &core.RecommendContext{}, items(drama, comedy, comedy2, action))
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if !equal(ids(got), tt.want) {
				t.Errorf("Process() = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestExclusionFilter(t *testing.T) {
	user := interactions{
		watchlist: map[string]bool{"M2": true},
		history:   map[string]bool{"M4": true},
	}
	node := &FilterNode{Filters: []Filter{NewExclusionFilter()}}

	got, err := node.Process(context.Background(), &core.RecommendContext{User: user}, items(drama, comedy, comedy2, action))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if want := []string{"M1", "M3"}; !equal(ids(got), want) {
		t.Errorf("Process() = %v, want %v", ids(got), want)
	}

	got, _ = node.Process(context.Background(), &core.RecommendContext{}, items(drama, comedy))
	if len(got) != 2 {
		t.Errorf("no user should exclude nothing, got %v", ids(got))
	}
}

func TestFilterNodeLabelsDroppedItems(t *testing.T) {
	in := items(drama, comedy)
	node := &FilterNode{Filters: []Filter{NewGenreFilter("Drama")}}
	if _, err := node.Process(context.Background(), nil, in); err != nil {
		t.Fatal(err)
	}
	if lbl := in[1].Labels["filtered"]; lbl.Source != "filter.genre" {
		t.Errorf("filtered label = %+v", lbl)
	}
	if _, ok := in[0].Labels["filtered"]; ok {
		t.Error("kept item should not carry a filtered label")
	}
}

type failingFilter struct{}

func (failingFilter) Name() string { return "filter.failing" }
func (failingFilter) ShouldFilter(context.Context, *core.RecommendContext, *core.Item) (bool, error) {
	return true, errors.New("backend down")
}

func TestFilterNodeIgnoresErrors(t *testing.T) {
	node := &FilterNode{Filters: []Filter{failingFilter{}}}
	got, err := node.Process(context.Background(), nil, items(drama))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("erroring filter should keep items, got %v", ids(got))
	}
}

func TestBlacklistFilter(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	defer mem.Close()
	adapter := NewStoreAdapter(mem)
	if err := adapter.PutBlacklist(ctx, "blacklist:movies", []string{"m4"}); err != nil {
		t.Fatal(err)
	}

	node := &FilterNode{Filters: []Filter{NewBlacklistFilter([]string{"m2"}, adapter, "blacklist:movies")}}
	got, err := node.Process(ctx, nil, items(drama, comedy, comedy2, action))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"M1", "M3"}; !equal(ids(got), want) {
		t.Errorf("Process() = %v, want %v", ids(got), want)
	}

	// key 不存在时只按内存列表过滤
	f := NewBlacklistFilter(nil, adapter, "blacklist:missing")
	drop, err := f.ShouldFilter(ctx, nil, core.NewItem(action))
	if err != nil || drop {
		t.Errorf("ShouldFilter(missing key) = %v, %v", drop, err)
	}
}

func TestExprFilter(t *testing.T) {
	f, err := NewExprFilter("movie.year >= 1990 && movie.rating >= 7.0")
	if err != nil {
		t.Fatalf("NewExprFilter() error = %v", err)
	}
	node := &FilterNode{Filters: []Filter{f}}
	got, err := node.Process(context.Background(), &core.RecommendContext{}, items(drama, comedy, comedy2, action))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"M1", "M2", "M4"}; !equal(ids(got), want) {
		t.Errorf("Process() = %v, want %v", ids(got), want)
	}

	if _, err := NewExprFilter("movie.year >"); err == nil {
		t.Error("NewExprFilter() expected compile error")
	}
	empty, err := NewExprFilter("")
	if err != nil {
		t.Fatal(err)
	}
	if drop, _ := empty.ShouldFilter(context.Background(), nil, core.NewItem(drama)); drop {
		t.Error("empty expression should keep everything")
	}
}
