package pipeline

import (
	"context"

	"github.com/rushteam/movietrack/core"
)

// Kind 用于标记 Node 类型，方便观测与编排（例如按阶段插入额外节点）。
type Kind string

const (
	KindRecall Kind = "recall" // 召回阶段：从目录生成候选集
	KindFilter Kind = "filter" // 过滤阶段：剔除不符合类型/已交互的候选
	KindRank   Kind = "rank"   // 排序阶段：按策略排序
	KindReRank Kind = "rerank" // 重排阶段：多样性、截断
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态，方便召回生成、过滤剔除、重排截断等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}

// NodeBuilder 根据配置构建 Node。
type NodeBuilder func(map[string]interface{}) (Node, error)
