package core

import "github.com/rushteam/movietrack/pkg/utils"

// Item 是推荐链路中的统一承载结构：影片引用 + 标签。
// Labels 用于解释（召回来源、过滤原因、排序策略）。
type Item struct {
	ID     string
	Movie  *Movie
	Labels map[string]utils.Label
}

// NewItem 以影片构建 Item，ID 取规范形式。
func NewItem(m *Movie) *Item {
	return &Item{
		ID:     CanonicalID(m.ID),
		Movie:  m,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// Movies 取出 items 中的影片，保持顺序，跳过 nil。
func Movies(items []*Item) []*Movie {
	out := make([]*Movie, 0, len(items))
	for _, it := range items {
		if it == nil || it.Movie == nil {
			continue
		}
		out = append(out, it.Movie)
	}
	return out
}
