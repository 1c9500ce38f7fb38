package account

import "context"

// Repository 持久化全部用户。
//
// 实现：
//   - CSVRepository：单个 CSV 文件，原子替换
//   - KVRepository：core.Store（memory / redis / badger）中的 JSON 文档
type Repository interface {
	// Name 返回仓库名称（用于日志）
	Name() string

	// Load 读取全部用户；尚无数据时返回空切片
	Load(ctx context.Context) ([]*User, error)

	// Save 写入全部用户，顺序即下次 Load 的顺序
	Save(ctx context.Context, users []*User) error
}
