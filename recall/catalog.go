package recall

import (
	"context"

	"github.com/rushteam/movietrack/core"
	"github.com/rushteam/movietrack/pipeline"
	"github.com/rushteam/movietrack/pkg/utils"
)

// CatalogSource 是目录召回源：按存储顺序把目录中的每部影片转成 Item。
// 后续排序的稳定性依赖这里保持的目录顺序。
// 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type CatalogSource struct {
	// Catalog 为空时使用 rctx.Catalog
	Catalog core.Catalog
}

func (r *CatalogSource) Name() string        { return "recall.catalog" }
func (r *CatalogSource) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *CatalogSource) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *CatalogSource) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	catalog := r.Catalog
	if catalog == nil && rctx != nil {
		catalog = rctx.Catalog
	}
	if catalog == nil {
		return nil, nil
	}

	movies := catalog.All()
	out := make([]*core.Item, 0, len(movies))
	for _, m := range movies {
		if m == nil {
			continue
		}
		it := core.NewItem(m)
		it.PutLabel("recall_source", utils.Label{Value: "catalog", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

var _ Source = (*CatalogSource)(nil)
var _ pipeline.Node = (*CatalogSource)(nil)
