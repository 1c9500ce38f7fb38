package rerank

import (
	"context"

	"github.com/rushteam/movietrack/core"
	"github.com/rushteam/movietrack/pipeline"
)

const (
	// DefaultCount 是未给出（≤0）推荐数量时的默认值
	DefaultCount = 5
	// MaxCount 是单次推荐的最大数量
	MaxCount = 10
)

// ClampCount 把请求数量规范到 [1, MaxCount]：≤0 取 DefaultCount，>MaxCount 取 MaxCount。
func ClampCount(n int) int {
	if n <= 0 {
		return DefaultCount
	}
	if n > MaxCount {
		return MaxCount
	}
	return n
}

// TopNNode 是一个 Top-N 截断节点，放在排序之后截取前 N 个影片。
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &rank.PolicyNode{Policy: rank.PolicyYearDesc},
//	        &rerank.TopNNode{N: 10},
//	    },
//	}
type TopNNode struct {
	// N 要保留的影片数量，经 ClampCount 规范后使用
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	limit := ClampCount(n.N)
	if len(items) <= limit {
		return items, nil
	}
	return items[:limit], nil
}
