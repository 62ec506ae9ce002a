package wildcard

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/sealdice/wildseal/wildcard/types"
)

// 最内层的 {...}，内部不含花括号且非空
var groupPattern = regexp.MustCompile(`\{([^{}]+)\}`)

const weightSep = "::"

// ParseOptions 拆分随机组内部文本 "1::a|b|3::c"
func ParseOptions(content string) []types.WeightedOption {
	segments := strings.Split(content, "|")
	return lo.Map(segments, func(segment string, _ int) types.WeightedOption {
		return parseOption(segment)
	})
}

func parseOption(segment string) types.WeightedOption {
	weightStr, val, found := strings.Cut(segment, weightSep)
	if !found {
		return types.WeightedOption{Text: segment, Weight: 1.0}
	}

	weight, err := strconv.ParseFloat(strings.TrimSpace(weightStr), 64)
	if err != nil {
		// 权重写错了就当作普通文本，连同 :: 一起保留
		return types.WeightedOption{Text: segment, Weight: 1.0}
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		weight = 0
	}
	return types.WeightedOption{Text: val, Weight: weight}
}

// ExpandGroup 展开文本中第一个最内层随机组，返回新文本和是否发生了替换
func ExpandGroup(ctx *ResolutionContext, text string) (string, bool) {
	loc := groupPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, false
	}

	options := ParseOptions(text[loc[2]:loc[3]])
	choice := pickWeighted(ctx, options)

	return text[:loc[0]] + choice + text[loc[1]:], true
}

// pickWeighted 按权重抽一项，每次调用恰好消费一次随机数
func pickWeighted(ctx *ResolutionContext, options []types.WeightedOption) string {
	x := ctx.float64()

	if len(options) == 0 {
		return ""
	}

	total := lo.SumBy(options, func(o types.WeightedOption) float64 { return o.Weight })
	if !(total > 0) || math.IsInf(total, 0) {
		return options[0].Text
	}

	target := x * total
	cum := 0.0
	last := 0
	for i, o := range options {
		if o.Weight <= 0 {
			continue
		}
		cum += o.Weight
		last = i
		if target < cum {
			return o.Text
		}
	}

	// 浮点累加误差，落到最后一个有效项
	return options[last].Text
}
