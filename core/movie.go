package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Movie 是影片目录中的一条记录，加载后不可变。
// ID 在加载时规范化为大写；Genre 保留原始写法，比较时统一走 CanonicalGenre。
type Movie struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Genre  string  `json:"genre"`
	Year   int     `json:"year"`
	Rating float64 `json:"rating"`
}

// ShortDescription 返回菜单中使用的单行描述。
func (m *Movie) ShortDescription() string {
	return fmt.Sprintf("%s - %s (%s, %d) rating: %s", m.ID, m.Title, m.Genre, m.Year, formatRating(m.Rating))
}

// formatRating 保留至少一位小数，7 显示为 7.0，8.25 显示为 8.25。
func formatRating(r float64) string {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return strconv.FormatFloat(r, 'f', -1, 64)
	}
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// CanonicalID 是影片 ID 的规范形式（大写），所有 ID 比较点都必须经过它。
func CanonicalID(id string) string {
	return strings.ToUpper(id)
}

// CanonicalGenre 是类型标签的规范形式（小写），用于去重、匹配与排序。
func CanonicalGenre(genre string) string {
	return strings.ToLower(genre)
}

// SameGenre 判断两个类型标签是否大小写无关地相等。
func SameGenre(a, b string) bool {
	return CanonicalGenre(a) == CanonicalGenre(b)
}
