package normalizer

import (
	"regexp"
	"strings"
)

// 去掉热搜词尾部的互动量，例如 "Shai34K" 里的 "34K"。
// 只匹配字符串末尾的数字串（可带一个 K/M 量级字母），词中间的数字不动。
var defaultSuffixPattern = regexp.MustCompile(`\d+[KkMm]?\s*$`)

var spacesPattern = regexp.MustCompile(`\s+`)

// Reference 是一个热搜词归一化后的维基百科引用
type Reference struct {
	DocumentID string // 词条标识，例如 "Mike_Tirico"
	URL        string // 完整词条地址，同时作为去重 key
}

// Normalizer 把原始热搜词转成规范的维基百科词条地址。
// 纯函数，无网络无随机；尾缀清洗是启发式规则，可按需替换。
type Normalizer struct {
	baseURL       string
	suffixPattern *regexp.Regexp
}

func New(baseURL string) *Normalizer {
	return &Normalizer{
		baseURL:       strings.TrimRight(baseURL, "/"),
		suffixPattern: defaultSuffixPattern,
	}
}

// WithSuffixPattern 替换尾缀清洗规则。传 nil 表示完全关闭清洗。
func (n *Normalizer) WithSuffixPattern(re *regexp.Regexp) *Normalizer {
	n.suffixPattern = re
	return n
}

func (n *Normalizer) Normalize(trend string) Reference {
	id := trend
	if n.suffixPattern != nil {
		id = n.suffixPattern.ReplaceAllString(id, "")
	}
	id = strings.TrimSpace(id)
	id = strings.TrimLeft(id, "#")
	id = spacesPattern.ReplaceAllString(id, "_")

	return Reference{
		DocumentID: id,
		URL:        n.baseURL + "/wiki/" + id,
	}
}

// Title 从 DocumentID 还原用于 API 查询的标题（下划线转空格）
func (r Reference) Title() string {
	return strings.ReplaceAll(r.DocumentID, "_", " ")
}
