package report

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// 工作表名称的长度上限
	SheetNameLimit = 31
	// 文件名的长度上限
	FileNameLimit = 50
)

var unsafeRe = regexp.MustCompile(`[^A-Za-z0-9_]+`)

/*
输入任意名称和长度上限，输出只含字母、数字和下划线的名称

带重音的字母先折叠为基本字母，其余连续的非法字符替换为一个下划线，最后截断到limit
*/
func Sanitize(name string, limit int) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	s := unsafeRe.ReplaceAllString(folded, "_")
	if len(s) > limit {
		s = s[:limit]
	}
	return s
}

// Namer 在一个命名空间内分配互不冲突的名称，比较时不区分大小写
type Namer struct {
	limit int
	used  map[string]bool
}

func NewNamer(limit int, reserved ...string) *Namer {
	n := &Namer{limit: limit, used: make(map[string]bool)}
	for _, r := range reserved {
		n.used[strings.ToLower(r)] = true
	}
	return n
}

// 冲突后缀预留的长度，"_"加两位序号
const collisionReserve = 3

/*
输入原始名称，输出规范化后的唯一名称

冲突时基础名称最多保留limit-3个字符再追加"_1"、"_2"等后缀，后缀更长时继续截断，保证结果不超过长度上限
*/
func (n *Namer) Unique(name string) string {
	base := Sanitize(name, n.limit)
	if base == "" {
		base = "sheet"
	}
	candidate := base
	for i := 1; n.used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf("_%d", i)
		keep := n.limit - collisionReserve
		if keep+len(suffix) > n.limit {
			keep = n.limit - len(suffix)
		}
		if keep > len(base) {
			keep = len(base)
		}
		candidate = base[:keep] + suffix
	}
	n.used[strings.ToLower(candidate)] = true
	return candidate
}
