package core

import "github.com/rushteam/movietrack/pkg/utils"

// RecommendContext 承载一次推荐请求的用户与目录，贯穿整个 Pipeline 透传。
// 引擎只在单次调用期间读取它，调用结束后不保留引用。
type RecommendContext struct {
	UserID string

	// User 是用户交互状态（待看 + 历史），用于排除
	User Interactions

	// Catalog 是本次请求的影片目录
	Catalog Catalog

	// Labels 是请求级标签，例如所选策略
	Labels map[string]utils.Label

	// Params 请求级参数，透传给表达式过滤器（如 genre、policy、count）
	Params map[string]any
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
