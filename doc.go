// Package movietrack 是一个命令行影片追踪器：账户、待看列表、观看历史和推荐。
//
// 设计要点：
// - Pipeline-first: 推荐通过 Node 串联（CatalogSource → Filter → PolicyNode → ReRank → TopN）
// - Labels-first: 召回来源、过滤原因、排序策略以 Label 形式挂在 Item 上
// - Config-driven: 额外的过滤/重排节点可通过 YAML 挂载，不改代码
package movietrack

import (
	"github.com/rushteam/movietrack/pipeline"
	"github.com/rushteam/movietrack/recommend"
)

// 轻量 facade：便于直接 import "movietrack" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind
type Engine = recommend.Engine

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindRank   = pipeline.KindRank
	KindReRank = pipeline.KindReRank
)

// NewEngine 创建推荐引擎。
func NewEngine(opts ...recommend.Option) *Engine {
	return recommend.New(opts...)
}
