package wildcard

import (
	"strings"

	"github.com/samber/lo"

	"github.com/sealdice/wildseal/utils"
)

// DefaultModelSuffixes 比较名称时去掉的后缀，只去一个
var DefaultModelSuffixes = []string{".safetensors", ".pt"}

// NormalizeName 反斜杠转正斜杠、转小写、去掉一个已知后缀
func NormalizeName(name string, suffixes []string) string {
	n := strings.ToLower(utils.SlashPath(name))
	return utils.TrimOneSuffix(n, suffixes)
}

// MatchCanonicalName 在正式名称表中找到与 raw 对应的条目
//
// 先按完整路径比较，返回表中第一个规范化后相等的条目。
// 完整路径找不到、且 raw 本身不带目录时，再按最后一段文件名比较，
// 这样 "MyStyle" 能找到 "characters/MyStyle.safetensors"，
// 而写了目录的 "a/x" 不会误配到 "b/x"。
func MatchCanonicalName(raw string, names []string, suffixes []string) (string, bool) {
	want := NormalizeName(raw, suffixes)
	if want == "" {
		return "", false
	}

	if found, ok := lo.Find(names, func(name string) bool {
		return NormalizeName(name, suffixes) == want
	}); ok {
		return found, true
	}

	if strings.Contains(want, "/") {
		return "", false
	}

	return lo.Find(names, func(name string) bool {
		return utils.LastSegment(NormalizeName(name, suffixes)) == want
	})
}
