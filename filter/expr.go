package filter

import (
	"context"

	"github.com/rushteam/movietrack/core"
	"github.com/rushteam/movietrack/pkg/dsl"
)

// ExprFilter 用 CEL 表达式描述“保留”条件，表达式为 false 的影片被过滤。
//
//	&ExprFilter{Expr: `movie.year >= 1990 && movie.rating >= 7.0`}
//
// 表达式编译或求值失败时返回错误，FilterNode 会忽略该错误并保留影片。
type ExprFilter struct {
	Expr string
}

func NewExprFilter(expr string) (*ExprFilter, error) {
	if expr != "" {
		if _, err := dsl.Compile(expr); err != nil {
			return nil, err
		}
	}
	return &ExprFilter{Expr: expr}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	keep, err := dsl.NewEval(item, rctx).Evaluate(f.Expr)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
