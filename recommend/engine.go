// Package recommend 是推荐引擎：列出目录中的类型，并按类型过滤、排除已交互影片、
// 按策略排序、截断到请求数量。
//
// 每次调用都组装一条独立的 Pipeline：
//
//	recall.CatalogSource → filter.FilterNode{类型, 待看∪历史, 额外过滤器}
//	  → rank.PolicyNode → 额外重排节点 → rerank.TopNNode
//
// 引擎不持有目录和用户状态，只在单次调用期间读取它们。
package recommend

import (
	"cmp"
	"context"
	"math/rand/v2"
	"slices"

	"github.com/rushteam/movietrack/core"
	"github.com/rushteam/movietrack/filter"
	"github.com/rushteam/movietrack/logging"
	"github.com/rushteam/movietrack/pipeline"
	"github.com/rushteam/movietrack/pkg/utils"
	"github.com/rushteam/movietrack/rank"
	"github.com/rushteam/movietrack/recall"
	"github.com/rushteam/movietrack/rerank"
)

// Engine 是推荐引擎。零值可用。
type Engine struct {
	// Rand 是 random 策略的随机源；为 nil 时使用全局源
	Rand *rand.Rand

	// Extra 是配置驱动的额外节点：filter 阶段的节点插在排除过滤之后，
	// rerank 阶段的节点插在排序之后、截断之前；其他阶段的节点被忽略。
	Extra *pipeline.Pipeline
}

// Option 配置 Engine。
type Option func(*Engine)

// WithRand 指定随机源，测试中用固定种子保证可复现。
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.Rand = r }
}

// WithExtraPipeline 挂载额外节点。
func WithExtraPipeline(p *pipeline.Pipeline) Option {
	return func(e *Engine) { e.Extra = p }
}

// New 创建引擎。
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.Extra != nil {
		for _, n := range e.Extra.Nodes {
			if k := n.Kind(); k != pipeline.KindFilter && k != pipeline.KindReRank {
				logging.Warn().Str("node", n.Name()).Str("kind", string(k)).Msg("extra node ignored: only filter and rerank stages are pluggable")
			}
		}
	}
	return e
}

// ListGenres 返回目录中出现过的类型：大小写无关去重（保留首次出现的写法），
// 再按小写形式升序排列。目录为空时返回空切片。
func (e *Engine) ListGenres(catalog core.Catalog) []string {
	genres := make([]string, 0)
	if catalog == nil {
		return genres
	}

	seen := make(map[string]struct{})
	for _, m := range catalog.All() {
		if m == nil {
			continue
		}
		key := core.CanonicalGenre(m.Genre)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		genres = append(genres, m.Genre)
	}

	slices.SortStableFunc(genres, func(a, b string) int {
		return cmp.Compare(core.CanonicalGenre(a), core.CanonicalGenre(b))
	})
	return genres
}

// Recommend 为用户生成推荐列表。
//
//   - genre 为空串表示不过滤类型，否则大小写无关地精确匹配（不去除空白）
//   - policy 须与策略名完全一致，否则回退到 rating_desc
//   - count ≤0 取 5，>10 取 10
//
// 结果长度为 min(count, 候选数)，每部影片至多出现一次，且既不在待看列表也不在观看历史中。
// 该方法不返回错误：异常输入一律规范化处理。
func (e *Engine) Recommend(
	ctx context.Context,
	user core.Interactions,
	catalog core.Catalog,
	genre string,
	policy string,
	count int,
) []*core.Movie {
	n := rerank.ClampCount(count)
	p := rank.ParsePolicy(policy)

	rctx := &core.RecommendContext{
		User:    user,
		Catalog: catalog,
		Params: map[string]any{
			"genre":  genre,
			"policy": string(p),
			"count":  int64(n),
		},
	}
	if named, ok := user.(interface{ Name() string }); ok {
		rctx.UserID = named.Name()
	}
	rctx.PutLabel(rank.PolicyLabel, utils.Label{Value: string(p), Source: "request"})

	candidates, err := e.candidateStage(catalog, genre).Run(ctx, rctx, nil)
	if err != nil {
		logging.Warn().Err(err).Msg("candidate stage failed")
		return []*core.Movie{}
	}
	if len(candidates) == 0 {
		return []*core.Movie{}
	}

	ranked, err := e.rankStage(n).Run(ctx, rctx, candidates)
	if err != nil {
		logging.Warn().Err(err).Msg("rank stage failed")
		return []*core.Movie{}
	}

	out := core.Movies(ranked)
	policyLabel, _ := rctx.GetLabel(rank.PolicyLabel)
	logging.Debug().
		Str("user", rctx.UserID).
		Str("genre", genre).
		Stringer("policy", policyLabel).
		Int("count", n).
		Int("candidates", len(candidates)).
		Int("results", len(out)).
		Msg("recommend done")
	return out
}

func (e *Engine) candidateStage(catalog core.Catalog, genre string) *pipeline.Pipeline {
	nodes := []pipeline.Node{
		&recall.CatalogSource{Catalog: catalog},
		&filter.FilterNode{Filters: []filter.Filter{
			filter.NewGenreFilter(genre),
			filter.NewExclusionFilter(),
		}},
	}
	nodes = append(nodes, e.Extra.NodesOf(pipeline.KindFilter)...)
	return &pipeline.Pipeline{Nodes: nodes}
}

// rankStage 的 PolicyNode 从请求级 Label 读取策略。
func (e *Engine) rankStage(n int) *pipeline.Pipeline {
	nodes := []pipeline.Node{&rank.PolicyNode{Rand: e.Rand}}
	nodes = append(nodes, e.Extra.NodesOf(pipeline.KindReRank)...)
	nodes = append(nodes, &rerank.TopNNode{N: n})
	return &pipeline.Pipeline{Nodes: nodes}
}
