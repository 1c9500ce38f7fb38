package account

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/rushteam/movietrack/core"
)

const (
	userKeyPrefix = "user:"
	userIndexKey  = "users:index"
)

// userDoc 是用户在 KV 存储中的 JSON 文档。
type userDoc struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Watchlist    []string  `json:"watchlist"`
	History      []History `json:"history"`
}

// KVRepository 把用户存为 core.Store 中的 JSON 文档：
// 每个用户一个 user:<name>，另有 users:index 记录用户名顺序。
type KVRepository struct {
	store core.Store
}

func NewKVRepository(s core.Store) *KVRepository {
	return &KVRepository{store: s}
}

func (r *KVRepository) Name() string { return "kv." + r.store.Name() }

func (r *KVRepository) Load(ctx context.Context) ([]*User, error) {
	raw, err := r.store.Get(ctx, userIndexKey)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return []*User{}, nil
		}
		return nil, fmt.Errorf("read user index: %w", err)
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, fmt.Errorf("decode user index: %w", err)
	}
	if len(names) == 0 {
		return []*User{}, nil
	}

	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, userKeyPrefix+name)
	}
	docs, err := r.store.BatchGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}

	users := make([]*User, 0, len(names))
	for _, key := range keys {
		data, ok := docs[key]
		if !ok {
			continue
		}
		var doc userDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		u := NewUser(doc.Username, doc.PasswordHash)
		u.Watchlist = NewWatchlist(doc.Watchlist...)
		u.History = NewHistoryLog(doc.History...)
		users = append(users, u)
	}
	return users, nil
}

func (r *KVRepository) Save(ctx context.Context, users []*User) error {
	kvs := make(map[string][]byte, len(users)+1)
	names := make([]string, 0, len(users))
	for _, u := range users {
		if u == nil {
			continue
		}
		u.ensure()
		data, err := json.Marshal(userDoc{
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			Watchlist:    u.Watchlist.Items(),
			History:      u.History.Entries(),
		})
		if err != nil {
			return fmt.Errorf("encode user %s: %w", u.Username, err)
		}
		kvs[userKeyPrefix+u.Username] = data
		names = append(names, u.Username)
	}

	index, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode user index: %w", err)
	}
	kvs[userIndexKey] = index
	return r.store.BatchSet(ctx, kvs)
}

var _ Repository = (*KVRepository)(nil)
