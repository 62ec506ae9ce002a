package wildcard

import (
	"regexp"
	"strings"

	"github.com/sealdice/wildseal/utils"
)

// __name__，名字可以带路径分隔符、空格、连字符和点
// 用非贪婪匹配，保证同一行里 "__a__ __b__" 是两个标签
var tokenPattern = regexp.MustCompile(`__([\p{L}\p{N}_\-\s./\\]+?)__`)

// SubstituteTokens 把所有能解析的 __name__ 换成对应词表里随机的一行
// 找不到词表或词表为空时保留原标签
func SubstituteTokens(ctx *ResolutionContext, text string, reg *TokenRegistry) (string, bool) {
	matches := tokenPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, false
	}

	var sb strings.Builder
	changed := false
	prev := 0
	for _, m := range matches {
		sb.WriteString(text[prev:m[0]])
		prev = m[1]

		if line, ok := pickTokenLine(ctx, text[m[2]:m[3]], reg); ok {
			sb.WriteString(line)
			changed = true
			continue
		}
		sb.WriteString(text[m[0]:m[1]])
	}
	sb.WriteString(text[prev:])

	if !changed {
		return text, false
	}
	return sb.String(), true
}

func pickTokenLine(ctx *ResolutionContext, name string, reg *TokenRegistry) (string, bool) {
	path, ok := reg.Lookup(utils.LastSegment(name))
	if !ok {
		return "", false
	}
	lines := LoadLines(path)
	if len(lines) == 0 {
		return "", false
	}
	return lines[ctx.intn(len(lines))], true
}
