package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/movietrack/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once

	// programs 缓存已编译的表达式，key 为表达式原文
	programs sync.Map
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("movie", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("label", cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable("params", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("user_id", cel.StringType),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Compile 编译表达式并缓存；同一表达式只编译一次。
// 返回错误表示语法错误或结果类型不是布尔值。
func Compile(expr string) (cel.Program, error) {
	if prg, ok := programs.Load(expr); ok {
		return prg.(cel.Program), nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	if ast.OutputType() != cel.BoolType && ast.OutputType() != cel.DynType {
		return nil, fmt.Errorf("expression must return bool, got %s", ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	programs.Store(expr, prg)
	return prg, nil
}

// Eval 是影片表达式解释器，使用 CEL (Common Expression Language) 实现。
//
// 可用变量：
//   - movie：id / title / genre / year / rating
//   - label：item 上的 Label 值（key → value）
//   - params：请求级参数（RecommendContext.Params）
//   - user_id：当前用户名
//
// 示例：
//   - `movie.year >= 1990`
//   - `movie.rating >= 8.0 && movie.genre != "Horror"`
//   - `movie.title.startsWith("The")`
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
}

// NewEval 创建一个新的解释器。rctx 可以为 nil。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	return &Eval{item: item, rctx: rctx}
}

// Evaluate 执行表达式，返回布尔结果。空表达式恒为 true。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.item == nil || e.item.Movie == nil {
		return false, fmt.Errorf("eval error: item has no movie")
	}

	prg, err := Compile(expr)
	if err != nil {
		return false, err
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]any {
	m := e.item.Movie
	movie := map[string]any{
		"id":     core.CanonicalID(m.ID),
		"title":  m.Title,
		"genre":  m.Genre,
		"year":   int64(m.Year),
		"rating": m.Rating,
	}

	labels := make(map[string]string, len(e.item.Labels))
	for k, v := range e.item.Labels {
		labels[k] = v.Value
	}

	params := map[string]any{}
	userID := ""
	if e.rctx != nil {
		userID = e.rctx.UserID
		for k, v := range e.rctx.Params {
			params[k] = v
		}
	}

	return map[string]any{
		"movie":   movie,
		"label":   labels,
		"params":  params,
		"user_id": userID,
	}
}
