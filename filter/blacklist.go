package filter

import (
	"context"

	"github.com/rushteam/movietrack/core"
)

// BlacklistFilter 是黑名单过滤器，过滤掉全局屏蔽的影片（例如下架片源）。
type BlacklistFilter struct {
	// ItemIDs 是内存中的黑名单影片 ID 列表（大小写无关）
	ItemIDs []string

	// Store 用于从存储中读取黑名单（可选）
	Store BlacklistStore

	// Key 是 Store 中的黑名单 key（可选）
	Key string

	ids map[string]struct{}
}

// BlacklistStore 是黑名单存储接口。
type BlacklistStore interface {
	// GetBlacklist 获取黑名单影片 ID 列表
	GetBlacklist(ctx context.Context, key string) ([]string, error)
}

// NewBlacklistFilter 创建一个黑名单过滤器。storeAdapter 可为 nil。
func NewBlacklistFilter(itemIDs []string, storeAdapter *StoreAdapter, key string) *BlacklistFilter {
	var store BlacklistStore
	if storeAdapter != nil {
		store = storeAdapter
	}
	ids := make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		ids[core.CanonicalID(id)] = struct{}{}
	}
	return &BlacklistFilter{
		ItemIDs: itemIDs,
		Store:   store,
		Key:     key,
		ids:     ids,
	}
}

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

func (f *BlacklistFilter) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	id := core.CanonicalID(item.ID)

	if f.ids != nil {
		if _, ok := f.ids[id]; ok {
			return true, nil
		}
	} else {
		for _, blocked := range f.ItemIDs {
			if core.CanonicalID(blocked) == id {
				return true, nil
			}
		}
	}

	if f.Store != nil && f.Key != "" {
		blacklist, err := f.Store.GetBlacklist(ctx, f.Key)
		if err != nil {
			if core.IsStoreNotFound(err) {
				return false, nil
			}
			return false, err
		}
		for _, blocked := range blacklist {
			if core.CanonicalID(blocked) == id {
				return true, nil
			}
		}
	}

	return false, nil
}
