package core

// Catalog 是影片目录访问接口。
//
// 实现：
//   - catalog.Library（内存有序目录，从 CSV 加载）
type Catalog interface {
	// All 按存储顺序返回全部影片，调用方不得修改返回的切片
	All() []*Movie

	// Get 按 ID（大小写无关）查找影片
	Get(id string) (*Movie, bool)
}

// Interactions 是单个用户交互状态的只读访问接口。
// 推荐引擎只把它当作排除谓词，不会修改它。
//
// 实现：
//   - account.User
type Interactions interface {
	// InWatchlist 判断影片是否在待看列表中（ID 大小写无关）
	InWatchlist(id string) bool

	// InHistory 判断影片是否在观看历史中（ID 大小写无关）
	InHistory(id string) bool
}
