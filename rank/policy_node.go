package rank

import (
	"context"
	"math/rand/v2"
	"sort"

	"github.com/rushteam/movietrack/core"
	"github.com/rushteam/movietrack/pipeline"
	"github.com/rushteam/movietrack/pkg/utils"
)

// PolicyNode 按 Policy 对候选排序。
//
//   - 非随机策略：稳定排序，Precedes 无法区分的影片保持输入（目录）顺序
//   - random：对整个候选序列做一次 Fisher-Yates 洗牌
//
// 输入切片不会被修改。
type PolicyNode struct {
	// Policy 为空时读取请求级 Label PolicyLabel
	Policy Policy

	// Rand 是随机源，仅 random 策略使用；为 nil 时使用 math/rand/v2 全局源
	Rand *rand.Rand
}

func (n *PolicyNode) Name() string        { return "rank.policy" }
func (n *PolicyNode) Kind() pipeline.Kind { return pipeline.KindRank }

// PolicyLabel 是请求级 Label 的 key，值为策略名。
const PolicyLabel = "policy"

func (n *PolicyNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	policy := n.Policy
	if policy == "" && rctx != nil {
		if lbl, ok := rctx.GetLabel(PolicyLabel); ok {
			policy = ParsePolicy(lbl.Value)
		}
	}
	if !policy.Valid() {
		policy = DefaultPolicy
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil || it.Movie == nil {
			continue
		}
		it.PutLabel("rank_policy", utils.Label{Value: string(policy), Source: "rank"})
		out = append(out, it)
	}

	if policy == PolicyRandom {
		swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
		if n.Rand != nil {
			n.Rand.Shuffle(len(out), swap)
		} else {
			rand.Shuffle(len(out), swap)
		}
		return out, nil
	}

	sort.SliceStable(out, func(i, j int) bool {
		return policy.Precedes(out[i].Movie, out[j].Movie)
	})
	return out, nil
}

var _ pipeline.Node = (*PolicyNode)(nil)
