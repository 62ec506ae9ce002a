package wildcard

import (
	"go.uber.org/zap"
)

// Resolve 反复展开随机组和词表标签，直到文本不再变化或到达轮数上限
//
// 每一轮先把所有随机组从左到右逐个展开(嵌套的从内往外)，再整体替换一次词表标签。
// 词表内容本身可以带新的随机组和标签，下一轮会继续展开。
// 单轮内生成的文本长度没有上限，只有轮数有上限，除非设置了 MaxOutputLength。
func Resolve(ctx *ResolutionContext, text string, reg *TokenRegistry) string {
	log := zap.S().Named("wildcard")

	for {
		start := text

		for {
			next, ok := ExpandGroup(ctx, text)
			if !ok {
				break
			}
			text = next
		}
		text, _ = SubstituteTokens(ctx, text, reg)
		ctx.Passes++

		if text == start {
			return text
		}
		if ctx.MaxOutputLength > 0 && len(text) > ctx.MaxOutputLength {
			log.Warnf("output length %d exceeds %d after pass %d, stop expanding", len(text), ctx.MaxOutputLength, ctx.Passes)
			return text
		}
		if ctx.Depth >= ctx.MaxDepth {
			log.Debugf("depth ceiling %d reached", ctx.MaxDepth)
			return text
		}
		ctx.Depth++
	}
}
