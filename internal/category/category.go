package category

import "strings"

// All 是 roll.wiki 接受的全部分类，大小写敏感，顺序固定。
// 系统任何路径给出的分类都必须取自这里。
var All = []string{
	"Architecture",
	"Arts",
	"Business",
	"Culture",
	"Dance",
	"Economics",
	"Education",
	"Engineering",
	"Entertainment",
	"Environment",
	"Fashion",
	"Film",
	"Food",
	"Geography",
	"History",
	"Literature",
	"Medicine",
	"Music",
	"Philosophy",
	"Politics",
	"Psychology",
	"Religion",
	"Science",
	"Sports",
	"Technology",
	"Theater",
	"Transportation",
}

func IsValid(c string) bool {
	for _, v := range All {
		if v == c {
			return true
		}
	}
	return false
}

// Canonical 忽略大小写匹配分类名，返回规范写法。
// LLM 偶尔会返回 "sports" 之类的小写结果，这里纠正大小写。
func Canonical(c string) (string, bool) {
	c = strings.TrimSpace(c)
	for _, v := range All {
		if strings.EqualFold(v, c) {
			return v, true
		}
	}
	return "", false
}
