// Package catalog 维护影片目录：一个按加载顺序排列、按规范 ID 索引的只读集合。
package catalog

import (
	"github.com/rushteam/movietrack/core"
)

// Library 是内存有序目录，实现 core.Catalog。
// 加载完成后只读，可被多个 goroutine 并发读取。
type Library struct {
	movies []*core.Movie
	byID   map[string]*core.Movie
}

// NewLibrary 以给定影片构建目录；ID 重复时保留第一条。
func NewLibrary(movies ...*core.Movie) *Library {
	l := &Library{
		movies: make([]*core.Movie, 0, len(movies)),
		byID:   make(map[string]*core.Movie, len(movies)),
	}
	for _, m := range movies {
		l.add(m)
	}
	return l
}

// add 追加影片，ID 规范化为大写。ID 为空或已存在时返回 false。
func (l *Library) add(m *core.Movie) bool {
	if m == nil {
		return false
	}
	id := core.CanonicalID(m.ID)
	if id == "" {
		return false
	}
	if _, ok := l.byID[id]; ok {
		return false
	}
	m.ID = id
	l.movies = append(l.movies, m)
	l.byID[id] = m
	return true
}

// All 按加载顺序返回全部影片。
func (l *Library) All() []*core.Movie {
	if l == nil {
		return nil
	}
	return l.movies
}

// Get 按 ID 查找影片，大小写无关。
func (l *Library) Get(id string) (*core.Movie, bool) {
	if l == nil {
		return nil, false
	}
	m, ok := l.byID[core.CanonicalID(id)]
	return m, ok
}

// Len 返回影片数量。
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.movies)
}

var _ core.Catalog = (*Library)(nil)
