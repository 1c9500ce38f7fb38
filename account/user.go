// Package account 管理用户账户及其交互状态（待看列表、观看历史），
// 并通过 Repository 持久化。
package account

import (
	"slices"

	"github.com/rushteam/movietrack/core"
)

// History 是一条观看记录，WatchedDate 形如 2006-01-02。
type History struct {
	MovieID     string `json:"movie_id"`
	WatchedDate string `json:"watched_date"`
}

// Watchlist 是有序、去重的影片 ID 集合，ID 统一大写。
type Watchlist struct {
	items []string
}

// NewWatchlist 以给定 ID 构建待看列表，重复和空 ID 被忽略。
func NewWatchlist(ids ...string) *Watchlist {
	w := &Watchlist{}
	for _, id := range ids {
		w.Add(id)
	}
	return w
}

// Add 追加影片，已存在时返回 false。
func (w *Watchlist) Add(id string) bool {
	id = core.CanonicalID(id)
	if id == "" || w.Contains(id) {
		return false
	}
	w.items = append(w.items, id)
	return true
}

// Remove 移除影片，不存在时返回 false。
func (w *Watchlist) Remove(id string) bool {
	i := slices.Index(w.items, core.CanonicalID(id))
	if i < 0 {
		return false
	}
	w.items = slices.Delete(w.items, i, i+1)
	return true
}

func (w *Watchlist) Contains(id string) bool {
	return slices.Contains(w.items, core.CanonicalID(id))
}

// Items 返回副本。
func (w *Watchlist) Items() []string {
	return slices.Clone(w.items)
}

func (w *Watchlist) Len() int {
	return len(w.items)
}

// HistoryLog 是观看历史，每部影片至多一条；重复标记会原地更新日期。
type HistoryLog struct {
	entries []History
}

// NewHistoryLog 以给定记录构建历史，同一影片后出现的记录覆盖先出现的日期。
func NewHistoryLog(entries ...History) *HistoryLog {
	h := &HistoryLog{}
	for _, e := range entries {
		h.Add(e.MovieID, e.WatchedDate)
	}
	return h
}

// Add 记录一次观看。
func (h *HistoryLog) Add(id, date string) {
	id = core.CanonicalID(id)
	if id == "" {
		return
	}
	for i := range h.entries {
		if h.entries[i].MovieID == id {
			h.entries[i].WatchedDate = date
			return
		}
	}
	h.entries = append(h.entries, History{MovieID: id, WatchedDate: date})
}

func (h *HistoryLog) Contains(id string) bool {
	id = core.CanonicalID(id)
	return slices.ContainsFunc(h.entries, func(e History) bool { return e.MovieID == id })
}

// Entries 返回副本，按首次观看顺序排列。
func (h *HistoryLog) Entries() []History {
	return slices.Clone(h.entries)
}

func (h *HistoryLog) Len() int {
	return len(h.entries)
}

// User 是一个账户。PasswordHash 一般是 bcrypt 哈希；
// 旧数据文件中的明文密码在首次登录成功后升级为哈希。
type User struct {
	Username     string
	PasswordHash string
	Watchlist    *Watchlist
	History      *HistoryLog
}

// NewUser 创建没有交互记录的用户。
func NewUser(username, passwordHash string) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Watchlist:    NewWatchlist(),
		History:      NewHistoryLog(),
	}
}

// Name 返回用户名，推荐引擎用它填充请求的 UserID。
func (u *User) Name() string {
	if u == nil {
		return ""
	}
	return u.Username
}

// InWatchlist 与 InHistory 在 nil 用户上返回 false，此时不排除任何影片。
func (u *User) InWatchlist(id string) bool {
	return u != nil && u.Watchlist != nil && u.Watchlist.Contains(id)
}

func (u *User) InHistory(id string) bool {
	return u != nil && u.History != nil && u.History.Contains(id)
}

// MarkWatched 记录观看并把影片移出待看列表。
func (u *User) MarkWatched(id, date string) {
	u.ensure()
	u.History.Add(id, date)
	u.Watchlist.Remove(id)
}

func (u *User) ensure() {
	if u.Watchlist == nil {
		u.Watchlist = NewWatchlist()
	}
	if u.History == nil {
		u.History = NewHistoryLog()
	}
}

var _ core.Interactions = (*User)(nil)
