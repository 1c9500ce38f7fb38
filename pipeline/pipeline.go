package pipeline

import (
	"context"
	"fmt"

	"github.com/rushteam/movietrack/core"
	"github.com/rushteam/movietrack/logging"
)

// Pipeline 把推荐逻辑拆成可组合的 Node 链。
type Pipeline struct {
	Nodes []Node
}

// Run 依次执行每个 Node，前一个的输出作为后一个的输入。
// 任一 Node 返回错误时立即终止。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", node.Name(), err)
		}
		logging.Debug().
			Str("node", node.Name()).
			Str("kind", string(node.Kind())).
			Int("in", len(cur)).
			Int("out", len(next)).
			Msg("pipeline node done")
		cur = next
	}
	return cur, nil
}

// NodesOf 返回指定阶段的 Node，保持原有顺序。
func (p *Pipeline) NodesOf(kind Kind) []Node {
	if p == nil {
		return nil
	}
	out := make([]Node, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		if n != nil && n.Kind() == kind {
			out = append(out, n)
		}
	}
	return out
}
