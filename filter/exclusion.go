package filter

import (
	"context"

	"github.com/rushteam/movietrack/core"
)

// ExclusionFilter 过滤掉用户已交互过的影片：待看列表 ∪ 观看历史。
// 交互状态来自 rctx.User，只读；没有用户时不过滤。
type ExclusionFilter struct{}

func NewExclusionFilter() *ExclusionFilter {
	return &ExclusionFilter{}
}

func (f *ExclusionFilter) Name() string {
	return "filter.exclusion"
}

func (f *ExclusionFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if rctx == nil || rctx.User == nil {
		return false, nil
	}

	id := core.CanonicalID(item.ID)
	if rctx.User.InWatchlist(id) {
		return true, nil
	}
	return rctx.User.InHistory(id), nil
}
