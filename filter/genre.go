package filter

import (
	"context"

	"github.com/rushteam/movietrack/core"
)

// GenreFilter 只保留指定类型（大小写无关）的影片。
// Genre 为空表示不过滤，所有类型都通过。
type GenreFilter struct {
	Genre string
}

func NewGenreFilter(genre string) *GenreFilter {
	return &GenreFilter{Genre: genre}
}

func (f *GenreFilter) Name() string {
	return "filter.genre"
}

func (f *GenreFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Movie == nil {
		return true, nil
	}
	if f.Genre == "" {
		return false, nil
	}
	return !core.SameGenre(item.Movie.Genre, f.Genre), nil
}
