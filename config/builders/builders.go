// Package builders 在 init 中向 config 注册内置的可配置 Node：
//
//   - filter：组合过滤器，子类型 blacklist / expr / genre
//   - rerank.diversity：按类型打散
package builders

import (
	"fmt"
	"sync"

	"github.com/rushteam/movietrack/config"
	"github.com/rushteam/movietrack/core"
	"github.com/rushteam/movietrack/filter"
	"github.com/rushteam/movietrack/pipeline"
	"github.com/rushteam/movietrack/pkg/conv"
	"github.com/rushteam/movietrack/rerank"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.diversity", BuildDiversityNode)
}

var (
	storeMu      sync.RWMutex
	kvStore      core.Store
	blacklistKey string
)

// UseStore 指定 blacklist 过滤器读取的 Store 及默认 key，须在构建 Pipeline 之前调用。
func UseStore(s core.Store, defaultKey string) {
	storeMu.Lock()
	defer storeMu.Unlock()
	kvStore = s
	blacklistKey = defaultKey
}

func currentStore() (core.Store, string) {
	storeMu.RLock()
	defer storeMu.RUnlock()
	return kvStore, blacklistKey
}

// BuildFilterNode 构建 filter.FilterNode。
//
//	config:
//	  filters:
//	    - type: blacklist
//	      item_ids: [M7]
//	      key: blacklist:global
//	    - type: expr
//	      expr: "movie.rating >= 6.0"
func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "blacklist":
			ids := conv.SliceAnyToString(filterMap["item_ids"])
			if ids == nil {
				ids = []string{}
			}
			s, defaultKey := currentStore()
			key := conv.ConfigGet(filterMap, "key", defaultKey)
			var adapter *filter.StoreAdapter
			if s != nil && key != "" {
				adapter = filter.NewStoreAdapter(s)
			}
			filters = append(filters, filter.NewBlacklistFilter(ids, adapter, key))
		case "expr":
			expr := conv.ConfigGet(filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("expr filter: expr is required")
			}
			f, err := filter.NewExprFilter(expr)
			if err != nil {
				return nil, fmt.Errorf("expr filter: %w", err)
			}
			filters = append(filters, f)
		case "genre":
			filters = append(filters, filter.NewGenreFilter(conv.ConfigGet(filterMap, "genre", "")))
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

// BuildDiversityNode 构建 rerank.Diversity，max_per_genre 缺省为 1。
func BuildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	n := conv.ConfigGetInt64(cfg, "max_per_genre", 1)
	if n <= 0 {
		return nil, fmt.Errorf("max_per_genre must be positive, got %d", n)
	}
	return &rerank.Diversity{MaxPerGenre: int(n)}, nil
}
