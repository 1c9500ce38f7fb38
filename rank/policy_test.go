package rank

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/rushteam/movietrack/core"
	"github.com/rushteam/movietrack/pkg/utils"
)

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want Policy
	}{
		{"rating_desc", PolicyRatingDesc},
		{"rating_asc", PolicyRatingAsc},
		{"year_desc", PolicyYearDesc},
		{"year_asc", PolicyYearAsc},
		{"random", PolicyRandom},
		{" YEAR_ASC ", PolicyRatingDesc},
		{"RATING_ASC", PolicyRatingDesc},
		{"RANDOM", PolicyRatingDesc},
		{"year_asc ", PolicyRatingDesc},
		{"", PolicyRatingDesc},
		{"popularity", PolicyRatingDesc},
	}
	for _, tt := range tests {
		if got := ParsePolicy(tt.in); got != tt.want {
			t.Errorf("ParsePolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPoliciesMenuOrder(t *testing.T) {
	got := Policies()
	if len(got) != 5 || got[0] != PolicyRatingDesc || got[4] != PolicyRandom {
		t.Errorf("Policies() = %v", got)
	}
	for _, p := range got {
		if p.Describe() == "" {
			t.Errorf("%q has no description", p)
		}
	}
}

func movies() []*core.Movie {
	return []*core.Movie{
		{ID: "A", Year: 2010, Rating: 7.0},
		{ID: "B", Year: 1999, Rating: 9.0},
		{ID: "C", Year: 2005, Rating: 8.0},
		{ID: "D", Year: 2005, Rating: 8.5},
		{ID: "E", Year: 1999, Rating: 9.0},
	}
}

func itemsOf(ms []*core.Movie) []*core.Item {
	out := make([]*core.Item, 0, len(ms))
	for _, m := range ms {
		out = append(out, core.NewItem(m))
	}
	return out
}

func order(items []*core.Item) string {
	s := ""
	for _, it := range items {
		s += it.ID
	}
	return s
}

func TestPolicyNodeOrdering(t *testing.T) {
	tests := []struct {
		policy Policy
		want   string
	}{
		// 同分 B、E 保持目录顺序
		{PolicyRatingDesc, "BEDCA"},
		{PolicyRatingAsc, "ACDBE"},
		// 同年 2005：D 评分更高；同年 1999 完全相同：保持 B、E
		{PolicyYearDesc, "ADCBE"},
		{PolicyYearAsc, "BEDCA"},
		{Policy("bogus"), "BEDCA"},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			in := itemsOf(movies())
			got, err := (&PolicyNode{Policy: tt.policy}).Process(context.Background(), nil, in)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if order(got) != tt.want {
				t.Errorf("Process() order = %s, want %s", order(got), tt.want)
			}
			if order(in) != "ABCDE" {
				t.Errorf("input slice was reordered: %s", order(in))
			}
		})
	}
}

func TestPolicyNodeRandomIsPermutation(t *testing.T) {
	node := &PolicyNode{Policy: PolicyRandom, Rand: rand.New(rand.NewPCG(1, 2))}
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		got, err := node.Process(context.Background(), nil, itemsOf(movies()))
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 5 {
			t.Fatalf("random dropped items: %s", order(got))
		}
		counts := map[string]int{}
		for _, it := range got {
			counts[it.ID]++
		}
		for _, id := range []string{"A", "B", "C", "D", "E"} {
			if counts[id] != 1 {
				t.Fatalf("random output %s is not a permutation", order(got))
			}
		}
		seen[order(got)] = true
	}
	if len(seen) < 2 {
		t.Errorf("random policy produced a single ordering over 200 trials")
	}
}

func TestPolicyNodeRandomSeededIsReproducible(t *testing.T) {
	a := &PolicyNode{Policy: PolicyRandom, Rand: rand.New(rand.NewPCG(7, 7))}
	b := &PolicyNode{Policy: PolicyRandom, Rand: rand.New(rand.NewPCG(7, 7))}
	ga, _ := a.Process(context.Background(), nil, itemsOf(movies()))
	gb, _ := b.Process(context.Background(), nil, itemsOf(movies()))
	if order(ga) != order(gb) {
		t.Errorf("same seed gave %s and %s", order(ga), order(gb))
	}
}

func TestPolicyNodeEmpty(t *testing.T) {
	got, err := (&PolicyNode{Policy: PolicyRandom}).Process(context.Background(), nil, nil)
	if err != nil || len(got) != 0 {
		t.Errorf("Process(nil) = %v, %v", got, err)
	}
}

func TestPolicyNodeRequestLabel(t *testing.T) {
	tests := []struct {
		name  string
		node  Policy
		label string
		want  string
	}{
		{"label selects policy", "", "rating_asc", "ACDBE"},
		{"label selects year", "", "year_desc", "ADCBE"},
		{"explicit policy wins", PolicyYearAsc, "rating_asc", "BEDCA"},
		{"unknown label falls back", "", "RATING_ASC", "BEDCA"},
		{"merged label falls back", "", "rating_asc|year_asc", "BEDCA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rctx := &core.RecommendContext{}
			rctx.PutLabel(PolicyLabel, utils.Label{Value: tt.label, Source: "request"})
			got, err := (&PolicyNode{Policy: tt.node}).Process(context.Background(), rctx, itemsOf(movies()))
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if order(got) != tt.want {
				t.Errorf("Process() order = %s, want %s", order(got), tt.want)
			}
		})
	}
}
