package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/movietrack/core"
)

func TestClampCount(t *testing.T) {
	tests := []struct{ in, want int }{
		{-3, 5}, {0, 5}, {1, 1}, {7, 7}, {10, 10}, {11, 10}, {25, 10},
	}
	for _, tt := range tests {
		if got := ClampCount(tt.in); got != tt.want {
			t.Errorf("ClampCount(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func makeItems(n int, genres ...string) []*core.Item {
	out := make([]*core.Item, 0, n)
	for i := 0; i < n; i++ {
		g := "Drama"
		if len(genres) > 0 {
			g = genres[i%len(genres)]
		}
		out = append(out, core.NewItem(&core.Movie{ID: string(rune('A' + i)), Genre: g}))
	}
	return out
}

func TestTopNNode(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		items int
		want  int
	}{
		{name: "fewer candidates than n", n: 10, items: 3, want: 3},
		{name: "truncate", n: 2, items: 6, want: 2},
		{name: "zero means default", n: 0, items: 8, want: 5},
		{name: "above max clamps", n: 25, items: 12, want: 10},
		{name: "empty", n: 3, items: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := makeItems(tt.items)
			got, err := (&TopNNode{N: tt.n}).Process(context.Background(), nil, in)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
			for i := range got {
				if got[i] != in[i] {
					t.Errorf("item %d is not the %d-th input", i, i)
				}
			}
		})
	}
}

func TestDiversity(t *testing.T) {
	in := makeItems(6, "Drama", "drama", "Comedy")
	// A Drama, B drama, C Comedy, D Drama, E drama, F Comedy
	got, err := (&Diversity{}).Process(context.Background(), nil, in)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "A" || got[1].ID != "C" {
		t.Errorf("Diversity{} = %v", core.Movies(got))
	}

	got, _ = (&Diversity{MaxPerGenre: 2}).Process(context.Background(), nil, in)
	if len(got) != 4 || got[1].ID != "B" || got[3].ID != "F" {
		t.Errorf("Diversity{2} = %v", core.Movies(got))
	}
}
