package wildcard

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/sealdice/wildseal/wildcard/types"
)

const DefaultDirectiveKeyword = "lora"

var (
	whitespacePattern = regexp.MustCompile(`[\s\p{Z}]+`)
	directivePatterns sync.Map // keyword -> *regexp.Regexp
)

func directivePattern(keyword string) *regexp.Regexp {
	if v, ok := directivePatterns.Load(keyword); ok {
		return v.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`<` + regexp.QuoteMeta(keyword) + `:([^>]+)>`)
	v, _ := directivePatterns.LoadOrStore(keyword, re)
	return v.(*regexp.Regexp)
}

// ExtractDirectives 取出文本中所有 <keyword:name[:a[:b]]> 标签
// 返回按出现顺序的指令列表，以及去掉标签、合并空白后的文本
// 名字为空的标签不产生指令，但同样会被删掉
func ExtractDirectives(text string, keyword string) ([]*types.ModifierDirective, string) {
	if keyword == "" {
		keyword = DefaultDirectiveKeyword
	}
	re := directivePattern(keyword)

	var directives []*types.ModifierDirective
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if d := parseDirective(m[1]); d != nil {
			directives = append(directives, d)
		}
	}

	clean := re.ReplaceAllLiteralString(text, "")
	clean = strings.TrimSpace(whitespacePattern.ReplaceAllString(clean, " "))

	return directives, clean
}

func parseDirective(inner string) *types.ModifierDirective {
	parts := strings.Split(inner, ":")
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil
	}

	primary := 1.0
	secondary := 1.0
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		if v, ok := parseStrength(parts[1]); ok {
			primary = v
			secondary = v
		}
	}
	if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		secondary = 1.0
		if v, ok := parseStrength(parts[2]); ok {
			secondary = v
		}
	}

	return &types.ModifierDirective{
		Name:              name,
		RawName:           name,
		PrimaryStrength:   primary,
		SecondaryStrength: secondary,
	}
}

func parseStrength(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
