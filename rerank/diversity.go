package rerank

import (
	"context"

	"github.com/rushteam/movietrack/core"
	"github.com/rushteam/movietrack/pipeline"
)

// Diversity 是按类型去重的重排：每个类型（大小写无关）只保留排序后首个出现的影片。
// 需放在排序之后、截断之前，否则截断会先于去重发生。
type Diversity struct {
	// MaxPerGenre 每个类型最多保留的数量，≤0 视为 1
	MaxPerGenre int
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	limit := n.MaxPerGenre
	if limit <= 0 {
		limit = 1
	}

	seen := make(map[string]int, 16)
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil || it.Movie == nil {
			continue
		}
		genre := core.CanonicalGenre(it.Movie.Genre)
		if seen[genre] >= limit {
			continue
		}
		seen[genre]++
		out = append(out, it)
	}
	return out, nil
}
