package rank

import (
	"github.com/rushteam/movietrack/core"
)

// Policy 是候选影片的排序策略。
type Policy string

const (
	PolicyRatingDesc Policy = "rating_desc" // 评分从高到低
	PolicyRatingAsc  Policy = "rating_asc"  // 评分从低到高
	PolicyYearDesc   Policy = "year_desc"   // 年份从新到旧，同年评分高者优先
	PolicyYearAsc    Policy = "year_asc"    // 年份从旧到新，同年评分高者优先
	PolicyRandom     Policy = "random"      // 均匀随机
)

// DefaultPolicy 是空值或无法识别时使用的策略。
const DefaultPolicy = PolicyRatingDesc

// Policies 按菜单顺序返回全部策略。
func Policies() []Policy {
	return []Policy{PolicyRatingDesc, PolicyRatingAsc, PolicyYearDesc, PolicyYearAsc, PolicyRandom}
}

// ParsePolicy 把字符串解析为 Policy，只接受与策略名完全一致的值。
// 其他值（包括大小写或空白不同的写法）静默回退到 DefaultPolicy。
func ParsePolicy(s string) Policy {
	p := Policy(s)
	if p.Valid() {
		return p
	}
	return DefaultPolicy
}

// Valid 判断是否为已知策略。
func (p Policy) Valid() bool {
	switch p {
	case PolicyRatingDesc, PolicyRatingAsc, PolicyYearDesc, PolicyYearAsc, PolicyRandom:
		return true
	}
	return false
}

// Describe 返回菜单中展示的说明文字。
func (p Policy) Describe() string {
	switch p {
	case PolicyRatingAsc:
		return "Rating low to high"
	case PolicyYearDesc:
		return "Year new to old"
	case PolicyYearAsc:
		return "Year old to new"
	case PolicyRandom:
		return "Random"
	default:
		return "Rating high to low"
	}
}

// Precedes 判断在策略 p 下 a 是否严格排在 b 之前。
// 返回 false 表示不区分先后，由稳定排序保留目录顺序。
// random 策略下恒为 false。
func (p Policy) Precedes(a, b *core.Movie) bool {
	switch p {
	case PolicyRatingAsc:
		return a.Rating < b.Rating
	case PolicyYearDesc:
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return a.Rating > b.Rating
	case PolicyYearAsc:
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Rating > b.Rating
	case PolicyRandom:
		return false
	default:
		return a.Rating > b.Rating
	}
}
