package recall

import (
	"context"

	"github.com/rushteam/movietrack/core"
)

// Source 表示一个召回源：根据请求上下文生成候选 Item。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
