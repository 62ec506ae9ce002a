package wildcard

import (
	"golang.org/x/exp/rand"
)

// MaxDepth 展开轮数上限，到达后原样返回当前文本
const MaxDepth = 20

// ResolutionContext 一次顶层解析调用的状态，不可跨调用复用
//
// 所有随机抽取(随机组、词表行)都从同一个 rng 按固定顺序消费，
// 所以同样的种子、输入和词表内容一定得到同样的输出。
type ResolutionContext struct {
	rng *rand.Rand

	Depth    int // 当前轮次，从 0 开始
	MaxDepth int
	Passes   int // 已执行的展开轮数

	// MaxOutputLength 大于 0 时，某一轮结束后文本超过该长度即停止展开
	MaxOutputLength int
}

func NewResolutionContext(seed uint64) *ResolutionContext {
	return &ResolutionContext{
		rng:      rand.New(rand.NewSource(mixSeed(seed))),
		MaxDepth: MaxDepth,
	}
}

func (ctx *ResolutionContext) float64() float64 {
	return ctx.rng.Float64()
}

func (ctx *ResolutionContext) intn(n int) int {
	return ctx.rng.Intn(n)
}

// mixSeed splitmix64，相邻的种子得到互不相关的初始状态
func mixSeed(seed uint64) uint64 {
	z := seed + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
